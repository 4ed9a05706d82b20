package network

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
)

// client is one connected pose producer
// gorilla connections allow one concurrent writer, so writes go through writeMu
type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	batches int
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.NewV4().String(),
		conn: conn,
	}
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// pingLoop keeps the read deadline alive until done closes or a ping fails
func (c *client) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
