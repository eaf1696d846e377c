package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	joinWait   = 10 * time.Second

	maxFrameSize  = 8 * 1024
	sendQueueSize = 256
)

// Client is one live websocket connection owned by a user.
type Client struct {
	conn *websocket.Conn
	hub  *Hub
	info ConnInfo
	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, info ConnInfo) *Client {
	return &Client{
		conn: conn,
		hub:  hub,
		info: info,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

// enqueue hands a payload to the write pump. A full queue means the peer is
// not draining; the client is closed instead of blocking the caller.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- payload:
		return true
	default:
		go c.Close("send queue full")
		return false
	}
}

// readPump keeps the connection alive and detects silence. The client is not
// expected to send anything after the join frame; inbound frames only refresh
// liveness.
func (c *Client) readPump() {
	defer c.Close("read closed")
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close("write closed")
	}()
	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close deregisters the client and tears the connection down. Safe to call
// from multiple goroutines; only the first call takes effect.
func (c *Client) Close(reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
		c.hub.unregister(c, reason)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
