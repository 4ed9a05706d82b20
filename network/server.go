// Package network accepts pose batches from browser-side detectors over WebSocket
// and exposes the live scoreboard over HTTP
package network

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/pose"
)

const (
	maxMessageSize  = 1 << 20
	pongWait        = 60 * time.Second
	pingPeriod      = 25 * time.Second
	writeWait       = 10 * time.Second
	shutdownTimeout = 2 * time.Second
)

// StatusFunc reports the latest published scoreboard
type StatusFunc func() engine.Scoreboard

// Status is the /status response body
type Status struct {
	engine.Scoreboard
	Clients int `json:"clients"`
}

// Server ingests pose batches into a slot
// Any number of producers may connect; the newest batch from any of them wins
type Server struct {
	addr   string
	slot   *pose.Slot
	status StatusFunc

	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[string]*client
	httpSrv  *http.Server
	listener net.Listener
	closed   bool
	active   sync.WaitGroup
}

// NewServer creates a server; status may be nil when no game is attached
func NewServer(addr string, slot *pose.Slot, status StatusFunc) *Server {
	return &Server{
		addr:   addr,
		slot:   slot,
		status: status,
		upgrader: websocket.Upgrader{
			// Detectors run from local pages and file:// origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// Name implements service.Service
func (s *Server) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Handler returns the routed, request-logged HTTP handler
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/poses", s.handlePoses).Methods("GET")
	router.HandleFunc("/status", s.handleStatus).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	return handlers.CombinedLoggingHandler(log.Writer(), router)
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.addr)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.listener = ln
	s.httpSrv = srv
	s.closed = false
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[net] serve: %v", err)
		}
	}()

	log.Printf("[net] listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, useful with port 0
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop shuts down HTTP, disconnects every producer and waits for their handlers
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.httpSrv
	s.httpSrv = nil
	s.closed = true
	s.mu.Unlock()

	var err error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = srv.Shutdown(ctx)
		cancel()
	}

	// Shutdown does not track hijacked connections
	s.mu.Lock()
	for _, c := range s.clients {
		c.conn.Close()
	}
	s.mu.Unlock()
	s.active.Wait()

	return errors.Wrap(err, "shutdown")
}

// Clients returns the number of connected producers
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handlePoses(w http.ResponseWriter, r *http.Request) {
	// Add under the lock that Stop takes before Wait, so no handler slips past it
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		http.Error(w, "server stopped", http.StatusServiceUnavailable)
		return
	}
	s.active.Add(1)
	s.mu.Unlock()
	defer s.active.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[net] upgrade: %v", err)
		return
	}

	c := newClient(conn)
	s.register(c)
	defer s.unregister(c)
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[net] client %s read: %v", c.id, err)
			}
			return
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := s.ingest(data); err != nil {
			log.Printf("[net] client %s: %v", c.id, err)
			reply, _ := json.Marshal(map[string]string{"error": err.Error()})
			if err := c.write(websocket.TextMessage, reply); err != nil {
				return
			}
			continue
		}
		c.batches++
	}
}

// ingest decodes one batch and replaces the slot contents; a bad batch leaves the slot untouched
// Scaling to the field is deferred to the frame loop
func (s *Server) ingest(data []byte) error {
	batch, err := pose.DecodeBatch(data)
	if err != nil {
		return err
	}
	batch.StoreIn(s.slot)
	return nil
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c.id] = c
	n := len(s.clients)
	s.mu.Unlock()
	log.Printf("[net] client %s connected from %s (%d total)", c.id, c.conn.RemoteAddr(), n)
}

// unregister drops c; with no producer left, detection has stopped and the slot is cleared
func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	n := len(s.clients)
	s.mu.Unlock()

	if n == 0 {
		s.slot.Clear()
	}
	log.Printf("[net] client %s disconnected after %d batches (%d left)", c.id, c.batches, n)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var st Status
	if s.status != nil {
		st.Scoreboard = s.status()
	}
	st.Clients = s.Clients()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("[net] status: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
