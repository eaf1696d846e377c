package models

import "time"

// BlockRelation suppresses mutual visibility between two users: matches are
// hidden from both active match lists and no further messages are accepted
// in either direction. Message history is retained.
type BlockRelation struct {
	BlockerID int64     `db:"blocker_id" json:"blocker_id"`
	BlockedID int64     `db:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
