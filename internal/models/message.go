package models

import "time"

// Message is a chat message within a match. Seq is assigned by the store
// under a per-match counter and is the ordering authority; SentAt is the
// server-side wall clock at insertion.
type Message struct {
	ID       int64     `db:"id" json:"id"`
	MatchID  int64     `db:"match_id" json:"match_id"`
	Seq      int64     `db:"seq" json:"seq"`
	SenderID int64     `db:"sender_id" json:"sender_id"`
	Content  string    `db:"content" json:"content"`
	SentAt   time.Time `db:"sent_at" json:"sent_at"`
}
