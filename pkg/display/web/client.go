package web

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = time.Second
)

// Client is a websocket connection to the hub.
type Client struct {
	mu          sync.RWMutex
	hub         *hub
	conn        *websocket.Conn
	Send        chan []byte
	ID          uint8
	RemoteAddr  string
	UserAgent   string
	avgLatency  uint16
	connectedAt time.Time
}

// latency returns the average round trip time in milliseconds.
func (c *Client) latency() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avgLatency
}

func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if len(appData) != 8 {
			return nil
		}
		sent := time.Unix(0, int64(binary.LittleEndian.Uint64([]byte(appData))))
		rtt := uint16(time.Since(sent).Milliseconds())
		c.mu.Lock()
		c.avgLatency = ((c.avgLatency * 9) + rtt) / 10
		c.mu.Unlock()
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		if message[0] == RequestClose {
			return
		}
		select {
		case c.hub.requests <- request{client: c, data: message}:
		case <-c.hub.done:
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// hub closed the connection
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			now := make([]byte, 8)
			binary.LittleEndian.PutUint64(now, uint64(time.Now().UnixNano()))
			if err := c.conn.WriteControl(websocket.PingMessage, now, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
