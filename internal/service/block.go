package service

import (
	"context"

	"match-service/internal/observability"
	"match-service/internal/rabbitmq"
)

// Block records a block relation. Idempotent: repeating a block is a no-op.
// The relation immediately hides any match between the pair from both match
// lists and rejects further sends in either direction; message history stays.
func (s *Service) Block(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 {
		return ErrInvalidUser
	}
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	created, err := s.blocks.Block(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if created {
		_ = s.publisher.Publish(ctx, rabbitmq.KeyUserBlocked, observability.EventEnvelope{
			EventType: "domain",
			EventName: "user_blocked",
			Payload: map[string]int64{
				"blocker_id": blockerID,
				"blocked_id": blockedID,
			},
		}, nil)
	}
	return nil
}
