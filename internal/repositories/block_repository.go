package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

// BlockRepository abstracts block relations.
type BlockRepository interface {
	Block(ctx context.Context, blockerID, blockedID int64) (bool, error)
	PairBlocked(ctx context.Context, a, b int64) (bool, error)
}

// BlockRepo is a sqlx implementation of BlockRepository.
type BlockRepo struct {
	db *sqlx.DB
}

// NewBlockRepo constructs a BlockRepo.
func NewBlockRepo(db *sqlx.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

// Block records a block relation. Idempotent; returns whether the relation
// was newly created.
func (r *BlockRepo) Block(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	relation := models.BlockRelation{BlockerID: blockerID, BlockedID: blockedID}
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO block_relations (blocker_id, blocked_id)
        VALUES (:blocker_id, :blocked_id)
        ON CONFLICT (blocker_id, blocked_id) DO NOTHING`, relation)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PairBlocked reports whether a block exists in either direction.
func (r *BlockRepo) PairBlocked(ctx context.Context, a, b int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(
        SELECT 1 FROM block_relations
        WHERE (blocker_id=$1 AND blocked_id=$2) OR (blocker_id=$2 AND blocked_id=$1))`, a, b)
	return exists, err
}
