package models

import "time"

// Match is a mutually-liked pair of users. Participants are stored in
// canonical order (UserAID < UserBID) so the pair is unique regardless of
// which direction completed the mutual like.
type Match struct {
	ID        int64     `db:"id" json:"id"`
	UserAID   int64     `db:"user_a_id" json:"user_a_id"`
	UserBID   int64     `db:"user_b_id" json:"user_b_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Other returns the participant that is not userID.
func (m Match) Other(userID int64) int64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// MatchSummary provides the API-friendly view of a match for one user.
type MatchSummary struct {
	MatchID   int64     `json:"match_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
