package models

import "time"

// SwipeDecision records a unilateral like/skip decision by swiper on target.
// One row per (swiper_id, target_id); a later decision overwrites the liked
// value while created_at keeps the original audit timestamp.
type SwipeDecision struct {
	SwiperID  int64     `db:"swiper_id" json:"swiper_id"`
	TargetID  int64     `db:"target_id" json:"target_id"`
	Liked     bool      `db:"liked" json:"liked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Liker is one entry in a "who liked you" listing.
type Liker struct {
	UserID  int64     `db:"swiper_id" json:"user_id"`
	LikedAt time.Time `db:"updated_at" json:"liked_at"`
}
