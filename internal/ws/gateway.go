package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/profile"
)

// Gateway upgrades client connections and runs the join protocol:
// Connecting -> Joined on a valid join frame, then push delivery until
// the connection drops.
type Gateway struct {
	hub      *Hub
	profiles profile.Service
}

// NewGateway constructs a Gateway.
func NewGateway(hub *Hub, profiles profile.Service) *Gateway {
	return &Gateway{hub: hub, profiles: profiles}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, restrict to configured origins.
		return true
	},
}

// Handle upgrades the connection, waits for the join frame, and registers
// the client. The connection owes the server a join within joinWait or it
// is dropped still in the Connecting state.
func (g *Gateway) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("match-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID, err := g.awaitJoin(conn)
	if err != nil {
		observability.IncWSEvent("join_failed")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "join required"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	if _, err := g.profiles.GetUser(ctx, userID); err != nil {
		observability.IncWSEvent("join_rejected")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown user"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	info := ConnInfo{
		ConnID:      uuid.NewString(),
		UserID:      userID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}

	client := newClient(g.hub, conn, info)
	g.hub.register(client)
	g.hub.publishConnEvent(info, "ws_connect", "")

	go client.writePump()
	go client.readPump()
}

// awaitJoin reads the first frame and expects {"type":"join","user_id":N}.
func (g *Gateway) awaitJoin(conn *websocket.Conn) (int64, error) {
	conn.SetReadLimit(maxFrameSize)
	if err := conn.SetReadDeadline(time.Now().Add(joinWait)); err != nil {
		return 0, err
	}

	_, payload, err := conn.ReadMessage()
	if err != nil {
		return 0, err
	}

	var frame models.JoinFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return 0, err
	}
	if frame.Type != models.FrameTypeJoin || frame.UserID <= 0 {
		return 0, errInvalidJoin
	}
	return frame.UserID, nil
}

var errInvalidJoin = &websocket.CloseError{Code: websocket.ClosePolicyViolation, Text: "invalid join frame"}
