package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"match-service/internal/models"
)

const pqUniqueViolation = "23505"

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, matchID, senderID int64, content string) (models.Message, error)
	History(ctx context.Context, matchID, afterSeq int64, limit int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a message with the next per-match sequence number. The match
// row is locked for the duration of the insert, which serializes concurrent
// sends on the same match; the unique index on (match_id, seq) is a backstop
// and a conflict there is retried once before being surfaced.
func (r *MessageRepo) Create(ctx context.Context, matchID, senderID int64, content string) (models.Message, error) {
	msg, err := r.createOnce(ctx, matchID, senderID, content)
	if err != nil && isUniqueViolation(err) {
		msg, err = r.createOnce(ctx, matchID, senderID, content)
	}
	return msg, err
}

func (r *MessageRepo) createOnce(ctx context.Context, matchID, senderID int64, content string) (models.Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Message{}, err
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM matches WHERE id=$1 FOR UPDATE`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMatchNotFound
	}
	if err != nil {
		return models.Message{}, err
	}

	// clock_timestamp() rather than NOW(): NOW() is frozen at transaction
	// start, before the FOR UPDATE wait, so a later seq could carry an
	// earlier timestamp. The statement clock is read under the lock.
	var msg models.Message
	err = tx.QueryRowxContext(ctx, `INSERT INTO messages (match_id, seq, sender_id, content, sent_at)
        SELECT $1, COALESCE(MAX(seq), 0) + 1, $2, $3, clock_timestamp() FROM messages WHERE match_id=$1
        RETURNING id, match_id, seq, sender_id, content, sent_at`, matchID, senderID, content).
		Scan(&msg.ID, &msg.MatchID, &msg.Seq, &msg.SenderID, &msg.Content, &msg.SentAt)
	if err != nil {
		return models.Message{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// History returns messages with seq greater than afterSeq in ascending seq
// order, capped at limit. afterSeq zero reads from the start of the match.
func (r *MessageRepo) History(ctx context.Context, matchID, afterSeq int64, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT id, match_id, seq, sender_id, content, sent_at
        FROM messages
        WHERE match_id=$1 AND seq > $2
        ORDER BY seq ASC
        LIMIT $3`, matchID, afterSeq, limit)
	return msgs, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
