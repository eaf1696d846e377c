package models

// PushEvent is emitted over websocket connections.
type PushEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	Match   *Match   `json:"match,omitempty"`
}

// JoinFrame is the first frame a client sends after connecting.
type JoinFrame struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
}

const (
	EventTypeMessage = "new_message"
	EventTypeMatch   = "match"
	FrameTypeJoin    = "join"
)
