package service

import (
	"context"
	"errors"
	"log"

	"match-service/internal/models"
	"match-service/internal/observability"
	"match-service/internal/pagination"
	"match-service/internal/profile"
	"match-service/internal/rabbitmq"
)

const likersPageSize = 20

// RecordSwipe appends the decision to the ledger and runs the match reducer.
// Returns the match when the swipe completes (or already completed) a mutual
// like, nil otherwise. Notifications fire only when this call created the
// match: the compare-and-create reports whether it won, so concurrent
// opposite-direction swipes produce exactly one match and one pair of events.
func (s *Service) RecordSwipe(ctx context.Context, swiperID, targetID int64, liked bool) (*models.Match, error) {
	if swiperID <= 0 || targetID <= 0 {
		return nil, ErrInvalidUser
	}
	if swiperID == targetID {
		return nil, ErrSelfSwipe
	}

	for _, id := range []int64{swiperID, targetID} {
		if _, err := s.profiles.GetUser(ctx, id); err != nil {
			if errors.Is(err, profile.ErrUserNotFound) {
				return nil, ErrInvalidUser
			}
			return nil, err
		}
	}

	if blocked, err := s.pairBlocked(ctx, swiperID, targetID); err != nil {
		return nil, err
	} else if blocked {
		return nil, ErrBlocked
	}

	created, changed, err := s.swipes.UpsertDecision(ctx, swiperID, targetID, liked)
	if err != nil {
		return nil, err
	}

	// Best-effort cache maintenance, only on actual transitions; the DB
	// count is authoritative. A fresh skip never counted, so there is
	// nothing to lower, and an identical re-swipe moves nothing.
	if changed {
		if liked {
			if err := s.likes.IncrLikeCount(ctx, targetID); err != nil {
				log.Printf("like count incr failed: %v", err)
			}
		} else if !created {
			if err := s.likes.DecrLikeCount(ctx, targetID); err != nil {
				log.Printf("like count decr failed: %v", err)
			}
		}
	}

	if !liked {
		return nil, nil
	}

	mutual, err := s.swipes.HasLiked(ctx, targetID, swiperID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, nil
	}

	match, created, err := s.matches.CreateIfAbsent(ctx, swiperID, targetID)
	if err != nil {
		return nil, err
	}
	if created {
		observability.IncMatchCreated()
		s.notifier.NotifyMatch(match)
		_ = s.publisher.Publish(ctx, rabbitmq.KeyMatchCreated, observability.EventEnvelope{
			EventType: "domain",
			EventName: "match_created",
			Payload:   match,
		}, nil)
	}
	return &match, nil
}

// MatchesFor lists the user's active matches, blocked pairs excluded.
func (s *Service) MatchesFor(ctx context.Context, userID int64) ([]models.MatchSummary, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	return s.matches.ListForUser(ctx, userID)
}

// NewLikers lists users who liked userID without a reciprocal decision yet,
// with the total count served cache-first.
func (s *Service) NewLikers(ctx context.Context, userID int64, token string) ([]models.Liker, int64, *string, error) {
	if userID <= 0 {
		return nil, 0, nil, ErrInvalidUser
	}

	cursor, err := pagination.DecodeLiker(token)
	if err != nil {
		return nil, 0, nil, ErrInvalidCursor
	}

	likers, nextToken, err := s.swipes.ListNewLikers(ctx, userID, cursor, likersPageSize)
	if err != nil {
		return nil, 0, nil, err
	}

	count, hit, err := s.likes.GetLikeCount(ctx, userID)
	if err != nil || !hit {
		count, err = s.swipes.CountNewLikers(ctx, userID)
		if err != nil {
			return nil, 0, nil, err
		}
		if cacheErr := s.likes.SetLikeCount(ctx, userID, count); cacheErr != nil {
			log.Printf("like count cache set failed: %v", cacheErr)
		}
	}

	return likers, count, nextToken, nil
}

func (s *Service) pairBlocked(ctx context.Context, a, b int64) (bool, error) {
	blocked, err := s.blocks.PairBlocked(ctx, a, b)
	if err != nil || blocked {
		return blocked, err
	}
	return s.profiles.IsBlocked(ctx, a, b)
}
