package service

import (
	"context"
	"strings"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/pagination"
	"match-service/internal/rabbitmq"
)

const historyPageSize = 50

// SendMessage validates and stores a message, then pushes it to the
// recipient's live connections. The message is durable before any push is
// attempted; a dead connection costs nothing but the push.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, ErrEmptyContent
	}
	if senderID <= 0 || receiverID <= 0 {
		return models.Message{}, ErrInvalidUser
	}

	match, err := s.matches.GetByPair(ctx, senderID, receiverID)
	if err != nil {
		return models.Message{}, err
	}

	if blocked, err := s.pairBlocked(ctx, senderID, receiverID); err != nil {
		return models.Message{}, err
	} else if blocked {
		return models.Message{}, ErrBlocked
	}

	msg, err := s.messages.Create(ctx, match.ID, senderID, content)
	if err != nil {
		return models.Message{}, err
	}

	observability.IncMessageSent()
	s.notifier.NotifyMessage(receiverID, msg)
	_ = s.publisher.Publish(ctx, rabbitmq.KeyMessageSent, observability.EventEnvelope{
		EventType: "domain",
		EventName: "message_sent",
		Payload:   msg,
	}, nil)

	return msg, nil
}

// History returns the conversation between two users in ascending order,
// resuming after the cursor. Blocked pairs can still read their history;
// only new sends are rejected.
func (s *Service) History(ctx context.Context, userID, otherUserID int64, token string, limit int) ([]models.Message, *string, error) {
	if userID <= 0 || otherUserID <= 0 {
		return nil, nil, ErrInvalidUser
	}
	if limit <= 0 || limit > historyPageSize {
		limit = historyPageSize
	}

	cursor, err := pagination.DecodeMessage(token)
	if err != nil {
		return nil, nil, ErrInvalidCursor
	}

	match, err := s.matches.GetByPair(ctx, userID, otherUserID)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.History(ctx, match.ID, cursor.Seq, limit+1)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(msgs) > limit {
		msgs = msgs[:limit]
		token := pagination.EncodeMessage(pagination.MessageCursor{Seq: msgs[limit-1].Seq})
		nextToken = &token
	}
	return msgs, nextToken, nil
}
