package wsclient

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"match-service/internal/models"
	"match-service/internal/pagination"
)

// State of the connection lifecycle:
// Connecting -> Joined -> Active, and Disconnected once reconnection is
// exhausted or the client is closed.
type State string

const (
	StateConnecting   State = "connecting"
	StateJoined       State = "joined"
	StateActive       State = "active"
	StateDisconnected State = "disconnected"
)

// DefaultMaxRetries bounds reconnection attempts per drop.
const DefaultMaxRetries = 5

// Config drives a Client.
type Config struct {
	URL    string
	UserID int64

	// MaxRetries bounds reconnect attempts per connection drop.
	// Zero means DefaultMaxRetries.
	MaxRetries uint64

	// NewBackOff supplies the backoff schedule for one reconnect cycle.
	// Nil means exponential backoff with defaults.
	NewBackOff func() backoff.BackOff

	// OnEvent receives each push event exactly once per message id.
	OnEvent func(models.PushEvent)

	// OnRejoin runs after every successful rejoin; the usual reaction is a
	// history fetch from Cursor to close the gap, since the server keeps no
	// replay queue.
	OnRejoin func(ctx context.Context)
}

// Client is a reconnecting websocket consumer of the push channel. Delivery
// over the wire is at-least-once; the client deduplicates by message id.
type Client struct {
	cfg Config

	mu      sync.Mutex
	state   State
	conn    *websocket.Conn
	seen    map[int64]struct{}
	cursors map[int64]int64 // match id -> last seen seq

	closed chan struct{}
	once   sync.Once
}

// Dial connects, joins, and starts consuming events.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.NewBackOff == nil {
		cfg.NewBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}

	c := &Client{
		cfg:     cfg,
		state:   StateConnecting,
		seen:    make(map[int64]struct{}),
		cursors: make(map[int64]int64),
		closed:  make(chan struct{}),
	}

	if err := c.connect(ctx); err != nil {
		c.setState(StateDisconnected)
		return nil, err
	}

	go c.run(ctx)
	return c, nil
}

// State reports the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cursor returns the opaque history cursor for a match, positioned at the
// last message the client has seen.
func (c *Client) Cursor(matchID int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seq, ok := c.cursors[matchID]
	if !ok {
		return ""
	}
	return pagination.EncodeMessage(pagination.MessageCursor{Seq: seq})
}

// Close stops the client. It does not affect anything already stored
// server-side.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.closed)
		c.mu.Lock()
		conn := c.conn
		c.state = StateDisconnected
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
	})
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) connect(ctx context.Context) error {
	c.setState(StateConnecting)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return err
	}

	join := models.JoinFrame{Type: models.FrameTypeJoin, UserID: c.cfg.UserID}
	payload, _ := json.Marshal(join)
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		_ = conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateJoined
	c.mu.Unlock()
	return nil
}

// run consumes events and drives the reconnect cycle when the connection
// drops. Each drop gets a fresh bounded backoff schedule.
func (c *Client) run(ctx context.Context) {
	for {
		c.readLoop()

		select {
		case <-c.closed:
			return
		case <-ctx.Done():
			c.setState(StateDisconnected)
			return
		default:
		}

		if err := c.reconnect(ctx); err != nil {
			log.Printf("wsclient giving up after %d attempts: %v", c.cfg.MaxRetries, err)
			c.setState(StateDisconnected)
			return
		}
		if c.cfg.OnRejoin != nil {
			c.cfg.OnRejoin(ctx)
		}
	}
}

func (c *Client) reconnect(ctx context.Context) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(c.cfg.NewBackOff(), c.cfg.MaxRetries), ctx)
	return backoff.Retry(func() error {
		select {
		case <-c.closed:
			return backoff.Permanent(context.Canceled)
		default:
		}
		return c.connect(ctx)
	}, policy)
}

func (c *Client) readLoop() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return
		}

		var event models.PushEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}
		c.handle(event)
	}
}

func (c *Client) handle(event models.PushEvent) {
	c.mu.Lock()
	if event.Message != nil {
		if _, dup := c.seen[event.Message.ID]; dup {
			c.mu.Unlock()
			return
		}
		c.seen[event.Message.ID] = struct{}{}
		if event.Message.Seq > c.cursors[event.Message.MatchID] {
			c.cursors[event.Message.MatchID] = event.Message.Seq
		}
	}
	c.state = StateActive
	c.mu.Unlock()

	if c.cfg.OnEvent != nil {
		c.cfg.OnEvent(event)
	}
}
