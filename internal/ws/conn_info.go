package ws

import "time"

// ConnInfo is per-connection metadata captured at join time. It is ephemeral:
// rebuilt on every reconnect, never persisted.
type ConnInfo struct {
	ConnID      string
	UserID      int64
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
