package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"match-service/internal/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchRepository abstracts match persistence.
type MatchRepository interface {
	CreateIfAbsent(ctx context.Context, userA, userB int64) (models.Match, bool, error)
	GetByPair(ctx context.Context, userA, userB int64) (models.Match, error)
	ListForUser(ctx context.Context, userID int64) ([]models.MatchSummary, error)
}

// MatchRepo is a sqlx implementation of MatchRepository.
type MatchRepo struct {
	db *sqlx.DB
}

// NewMatchRepo constructs a MatchRepo.
func NewMatchRepo(db *sqlx.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

func canonical(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// CreateIfAbsent creates the match for the canonical pair unless one already
// exists. Returns the match and whether this call created it. The insert and
// existence check are one statement: concurrent opposite-direction swipes
// both hit the unique index and exactly one caller sees created=true.
func (r *MatchRepo) CreateIfAbsent(ctx context.Context, userA, userB int64) (models.Match, bool, error) {
	a, b := canonical(userA, userB)

	var match models.Match
	err := r.db.QueryRowxContext(ctx, `INSERT INTO matches (user_a_id, user_b_id) VALUES ($1, $2)
        ON CONFLICT (user_a_id, user_b_id) DO NOTHING
        RETURNING id, user_a_id, user_b_id, created_at`, a, b).
		Scan(&match.ID, &match.UserAID, &match.UserBID, &match.CreatedAt)
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, false, err
	}

	// Conflict: someone else created it. Resolve to the existing row.
	existing, err := r.GetByPair(ctx, a, b)
	if err != nil {
		return models.Match{}, false, err
	}
	return existing, false, nil
}

// GetByPair fetches the match for an unordered user pair.
func (r *MatchRepo) GetByPair(ctx context.Context, userA, userB int64) (models.Match, error) {
	a, b := canonical(userA, userB)
	var match models.Match
	err := r.db.GetContext(ctx, &match,
		`SELECT id, user_a_id, user_b_id, created_at FROM matches WHERE user_a_id=$1 AND user_b_id=$2`, a, b)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, ErrMatchNotFound
	}
	return match, err
}

// ListForUser returns the user's active matches, newest first. Pairs with a
// block relation in either direction are hidden from both sides.
func (r *MatchRepo) ListForUser(ctx context.Context, userID int64) ([]models.MatchSummary, error) {
	query := `SELECT m.id, m.user_a_id, m.user_b_id, m.created_at FROM matches m
        WHERE (m.user_a_id=$1 OR m.user_b_id=$1)
        AND NOT EXISTS (
            SELECT 1 FROM block_relations b
            WHERE (b.blocker_id = m.user_a_id AND b.blocked_id = m.user_b_id)
               OR (b.blocker_id = m.user_b_id AND b.blocked_id = m.user_a_id)
        )
        ORDER BY m.created_at DESC`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.MatchSummary
	for rows.Next() {
		var match models.Match
		if err := rows.StructScan(&match); err != nil {
			return nil, err
		}
		result = append(result, models.MatchSummary{
			MatchID:   match.ID,
			UserID:    match.Other(userID),
			CreatedAt: match.CreatedAt,
		})
	}
	return result, rows.Err()
}
