package service

import (
	"errors"

	"match-service/internal/cache"
	"match-service/internal/models"
	"match-service/internal/profile"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
)

var (
	ErrInvalidUser   = errors.New("invalid user")
	ErrSelfSwipe     = errors.New("cannot swipe on yourself")
	ErrSelfBlock     = errors.New("cannot block yourself")
	ErrBlocked       = errors.New("blocked")
	ErrEmptyContent  = errors.New("message content is empty")
	ErrInvalidCursor = errors.New("invalid cursor")
)

// Notifier delivers push events to live connections. Implemented by ws.Hub;
// mocked in tests.
type Notifier interface {
	NotifyMatch(match models.Match)
	NotifyMessage(userID int64, msg models.Message)
}

// Service holds the chat/match core: the swipe ledger, the match reducer,
// the message store orchestration, and block enforcement.
type Service struct {
	swipes    repositories.SwipeRepository
	matches   repositories.MatchRepository
	messages  repositories.MessageRepository
	blocks    repositories.BlockRepository
	profiles  profile.Service
	likes     cache.LikeCounter
	notifier  Notifier
	publisher rabbitmq.Publisher
}

// NewService wires the core together.
func NewService(
	swipes repositories.SwipeRepository,
	matches repositories.MatchRepository,
	messages repositories.MessageRepository,
	blocks repositories.BlockRepository,
	profiles profile.Service,
	likes cache.LikeCounter,
	notifier Notifier,
	publisher rabbitmq.Publisher,
) *Service {
	return &Service{
		swipes:    swipes,
		matches:   matches,
		messages:  messages,
		blocks:    blocks,
		profiles:  profiles,
		likes:     likes,
		notifier:  notifier,
		publisher: publisher,
	}
}
