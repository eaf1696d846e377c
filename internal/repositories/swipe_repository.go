package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
	"match-service/internal/pagination"
)

// SwipeRepository abstracts the swipe ledger.
type SwipeRepository interface {
	UpsertDecision(ctx context.Context, swiperID, targetID int64, liked bool) (created, changed bool, err error)
	HasLiked(ctx context.Context, swiperID, targetID int64) (bool, error)
	ListNewLikers(ctx context.Context, userID int64, cursor pagination.LikerCursor, limit int) ([]models.Liker, *string, error)
	CountNewLikers(ctx context.Context, userID int64) (int64, error)
}

// SwipeRepo is a sqlx implementation of SwipeRepository.
type SwipeRepo struct {
	db *sqlx.DB
}

// NewSwipeRepo constructs a SwipeRepo.
func NewSwipeRepo(db *sqlx.DB) *SwipeRepo {
	return &SwipeRepo{db: db}
}

// UpsertDecision inserts the decision or overwrites the liked value for an
// existing (swiper, target) pair. Reports whether this call created the row
// and whether the stored liked value changed; an identical re-swipe leaves
// the row untouched. created_at keeps the original timestamp.
func (r *SwipeRepo) UpsertDecision(ctx context.Context, swiperID, targetID int64, liked bool) (created, changed bool, err error) {
	decision := models.SwipeDecision{SwiperID: swiperID, TargetID: targetID, Liked: liked}
	rows, err := r.db.NamedQueryContext(ctx, `INSERT INTO swipe_decisions (swiper_id, target_id, liked)
        VALUES (:swiper_id, :target_id, :liked)
        ON CONFLICT (swiper_id, target_id) DO UPDATE SET liked = EXCLUDED.liked, updated_at = NOW()
        WHERE swipe_decisions.liked IS DISTINCT FROM EXCLUDED.liked
        RETURNING (xmax = 0)`, decision)
	if err != nil {
		return false, false, err
	}
	defer rows.Close()

	// No row back means the conflict update was filtered out: the stored
	// value already matched.
	if !rows.Next() {
		return false, false, rows.Err()
	}
	if err := rows.Scan(&created); err != nil {
		return false, false, err
	}
	return created, true, nil
}

// HasLiked reports whether swiper has an active like on target.
func (r *SwipeRepo) HasLiked(ctx context.Context, swiperID, targetID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM swipe_decisions WHERE swiper_id=$1 AND target_id=$2 AND liked)`,
		swiperID, targetID)
	return exists, err
}

// newLikersFilter keeps the likers queries and the count in agreement:
// someone counts as a new liker when they liked the user, the like is not
// mutual yet, the user has not passed on them, and no block exists in
// either direction.
const newLikersFilter = `
        d.target_id = $1 AND d.liked
        AND NOT EXISTS (
            SELECT 1 FROM swipe_decisions d2
            WHERE d2.swiper_id = d.target_id AND d2.target_id = d.swiper_id AND d2.liked
        )
        AND NOT EXISTS (
            SELECT 1 FROM swipe_decisions d3
            WHERE d3.swiper_id = $1 AND d3.target_id = d.swiper_id AND NOT d3.liked
        )
        AND NOT EXISTS (
            SELECT 1 FROM block_relations b
            WHERE (b.blocker_id = $1 AND b.blocked_id = d.swiper_id)
               OR (b.blocker_id = d.swiper_id AND b.blocked_id = $1)
        )`

// ListNewLikers returns users who liked userID and have not been liked back,
// newest first, with cursor-based pagination.
func (r *SwipeRepo) ListNewLikers(ctx context.Context, userID int64, cursor pagination.LikerCursor, limit int) ([]models.Liker, *string, error) {
	base := `SELECT d.swiper_id, d.updated_at FROM swipe_decisions d WHERE` + newLikersFilter
	order := ` ORDER BY d.updated_at DESC, d.swiper_id DESC`

	var query string
	var args []any
	if cursor.SwiperID > 0 && cursor.UpdatedUnix > 0 {
		query = base + ` AND (d.updated_at < $2 OR (d.updated_at = $2 AND d.swiper_id < $3))` + order + ` LIMIT $4`
		args = []any{userID, cursor.UpdatedAt(), cursor.SwiperID, limit + 1}
	} else {
		query = base + order + ` LIMIT $2`
		args = []any{userID, limit + 1}
	}

	var likers []models.Liker
	if err := r.db.SelectContext(ctx, &likers, query, args...); err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(likers) > limit {
		last := likers[limit-1]
		token := pagination.EncodeLiker(pagination.LikerCursor{
			SwiperID:    last.UserID,
			UpdatedUnix: last.LikedAt.UnixMilli(),
		})
		nextToken = &token
		likers = likers[:limit]
	}
	return likers, nextToken, nil
}

// CountNewLikers counts users matching the new-likers filter.
func (r *SwipeRepo) CountNewLikers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM swipe_decisions d WHERE`+newLikersFilter, userID)
	return count, err
}
