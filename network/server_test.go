package network

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/pose"
)

const batchJSON = `{"width":320,"height":240,"poses":[{"keypoints":[
	{"name":"leftEye","x":100,"y":50,"confidence":0.9},
	{"name":"rightEye","x":120,"y":50,"confidence":0.9},
	{"name":"tail","x":1,"y":1,"confidence":0.9}]}]}`

func newTestServer(t *testing.T, status StatusFunc) (*Server, *httptest.Server, *pose.Slot) {
	t.Helper()
	slot := pose.NewSlot()
	s := NewServer("127.0.0.1:0", slot, status)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts, slot
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/poses"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPoses_IngestScalesIntoField(t *testing.T) {
	s, ts, slot := newTestServer(t, nil)
	conn := dial(t, ts)
	defer conn.Close()

	waitFor(t, "client registration", func() bool { return s.Clients() == 1 })

	if err := conn.WriteMessage(websocket.TextMessage, []byte(batchJSON)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	waitFor(t, "batch delivery", func() bool { return slot.Version() > 0 })

	if _, w, h := slot.Frame(); w != 320 || h != 240 {
		t.Errorf("Detector frame %vx%v, want 320x240", w, h)
	}
	poses := slot.LoadScaled(640, 480)
	if len(poses) != 1 {
		t.Fatalf("Expected 1 pose, got %d", len(poses))
	}
	head, ok := pose.HeadCenter(&poses[0])
	if !ok {
		t.Fatal("Expected a head")
	}
	if head.Center.X != 220 || head.Center.Y != 100 {
		t.Errorf("Head center %v, want (220,100) after 2x scaling", head.Center)
	}
	if poses[0].Count() != 2 {
		t.Errorf("Unknown keypoint should be dropped, got %d keypoints", poses[0].Count())
	}
}

func TestPoses_BadBatchKeepsSnapshot(t *testing.T) {
	_, ts, slot := newTestServer(t, nil)
	conn := dial(t, ts)
	defer conn.Close()

	conn.WriteMessage(websocket.TextMessage, []byte(batchJSON))
	waitFor(t, "batch delivery", func() bool { return slot.Version() == 1 })

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"poses": 7}`)); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, reply, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected an error reply: %v", err)
	}
	if !strings.Contains(string(reply), "error") {
		t.Errorf("Reply = %s", reply)
	}
	if slot.Version() != 1 || len(slot.Load()) != 1 {
		t.Error("Malformed batch must not replace the snapshot")
	}
}

func TestPoses_LastClientClearsSlot(t *testing.T) {
	s, ts, slot := newTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)
	waitFor(t, "two clients", func() bool { return s.Clients() == 2 })

	a.WriteMessage(websocket.TextMessage, []byte(batchJSON))
	waitFor(t, "batch delivery", func() bool { return len(slot.Load()) == 1 })

	a.Close()
	waitFor(t, "first disconnect", func() bool { return s.Clients() == 1 })
	if len(slot.Load()) != 1 {
		t.Error("Slot cleared while a producer remains")
	}

	b.Close()
	waitFor(t, "slot cleared", func() bool { return s.Clients() == 0 && slot.Load() == nil })
}

func TestStatus(t *testing.T) {
	board := engine.Scoreboard{Score: 12, HighScore: 40, Projectiles: 3, Frame: 99}
	_, ts, _ := newTestServer(t, func() engine.Scoreboard { return board })

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var raw map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[string]float64{"score": 12, "high_score": 40, "projectiles": 3, "frame": 99, "clients": 0}
	for k, v := range want {
		if raw[k] != v {
			t.Errorf("%s = %v, want %v", k, raw[k], v)
		}
	}
}

func TestHealthzAndMethods(t *testing.T) {
	_, ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Post(ts.URL+"/status", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_StartStop(t *testing.T) {
	slot := pose.NewSlot()
	s := NewServer("127.0.0.1:0", slot, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr()+"/poses", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, "client registration", func() bool { return s.Clients() == 1 })

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.Clients() != 0 {
		t.Errorf("Clients after Stop = %d", s.Clients())
	}
}

// TestServer_RejectsProducersAfterStop verifies no handler can join once Stop has begun waiting
func TestServer_RejectsProducersAfterStop(t *testing.T) {
	s, ts, _ := newTestServer(t, nil)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/poses"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
		t.Fatal("Expected the upgrade to be refused after Stop")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after Stop, got %v", resp)
	}
	if s.Clients() != 0 {
		t.Errorf("Clients = %d, want 0", s.Clients())
	}
}

func TestServer_PortInUse(t *testing.T) {
	slot := pose.NewSlot()
	first := NewServer("127.0.0.1:0", slot, nil)
	if err := first.Start(); err != nil {
		t.Fatal(err)
	}
	defer first.Stop()

	second := NewServer(first.Addr(), slot, nil)
	if err := second.Start(); err == nil {
		second.Stop()
		t.Error("Expected listen error on a bound port")
	}
}
