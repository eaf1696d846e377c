package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/rabbitmq"
)

// Hub is the session router: it maps user ids to their live connections and
// fans push events out to every connection of a user. Many connections per
// user are allowed (multi-device).
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}

	publisher rabbitmq.Publisher
}

// NewHub creates an empty hub. The publisher may be nil or a noop; websocket
// lifecycle events then go nowhere.
func NewHub(publisher rabbitmq.Publisher) *Hub {
	return &Hub{
		clients:   make(map[int64]map[*Client]struct{}),
		publisher: publisher,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.info.UserID]; !ok {
		h.clients[c.info.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.info.UserID][c] = struct{}{}

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
}

func (h *Hub) unregister(c *Client, reason string) {
	h.mu.Lock()
	if conns, ok := h.clients[c.info.UserID]; ok {
		if _, present := conns[c]; present {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.clients, c.info.UserID)
			}
		}
	}
	h.mu.Unlock()

	observability.DecWSActive()
	observability.IncWSEvent("ws_disconnect")
	h.publishConnEvent(c.info, "ws_disconnect", reason)
}

// ConnectionCount reports how many live connections a user has.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// NotifyMessage pushes a new_message event to every live connection of the
// user. Connections that cannot take the payload are closed; delivery to a
// disconnected user is the history fetch's problem, not the hub's.
func (h *Hub) NotifyMessage(userID int64, msg models.Message) {
	h.push(userID, models.PushEvent{Type: models.EventTypeMessage, Message: &msg})
}

// NotifyMatch pushes a match event to both participants.
func (h *Hub) NotifyMatch(match models.Match) {
	event := models.PushEvent{Type: models.EventTypeMatch, Match: &match}
	h.push(match.UserAID, event)
	h.push(match.UserBID, event)
}

func (h *Hub) push(userID int64, event models.PushEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if c.enqueue(payload) {
			observability.IncWSEvent("push")
		} else {
			log.Printf("websocket push dropped user_id=%d conn_id=%s", userID, c.info.ConnID)
			observability.IncWSEvent("push_dropped")
		}
	}
}

func (h *Hub) publishConnEvent(info ConnInfo, event, reason string) {
	if h.publisher == nil {
		return
	}

	payload := map[string]any{
		"ws": map[string]any{
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]any{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = h.publisher.Publish(context.Background(), rabbitmq.KeyWSEvents, observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	}, headers)
}
