package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"match-service/internal/cache"
	"match-service/internal/handlers"
	"match-service/internal/models"
	"match-service/internal/pagination"
	"match-service/internal/profile"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

type SwipeRepositoryMock struct {
	mock.Mock
}

func (m *SwipeRepositoryMock) UpsertDecision(ctx context.Context, swiperID, targetID int64, liked bool) (bool, bool, error) {
	args := m.Called(ctx, swiperID, targetID, liked)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *SwipeRepositoryMock) HasLiked(ctx context.Context, swiperID, targetID int64) (bool, error) {
	args := m.Called(ctx, swiperID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *SwipeRepositoryMock) ListNewLikers(ctx context.Context, userID int64, cursor pagination.LikerCursor, limit int) ([]models.Liker, *string, error) {
	args := m.Called(ctx, userID, cursor, limit)
	var likers []models.Liker
	if val := args.Get(0); val != nil {
		likers = val.([]models.Liker)
	}
	var token *string
	if val := args.Get(1); val != nil {
		token = val.(*string)
	}
	return likers, token, args.Error(2)
}

func (m *SwipeRepositoryMock) CountNewLikers(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MatchRepositoryMock struct {
	mock.Mock
}

func (m *MatchRepositoryMock) CreateIfAbsent(ctx context.Context, userA, userB int64) (models.Match, bool, error) {
	args := m.Called(ctx, userA, userB)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Bool(1), args.Error(2)
}

func (m *MatchRepositoryMock) GetByPair(ctx context.Context, userA, userB int64) (models.Match, error) {
	args := m.Called(ctx, userA, userB)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Error(1)
}

func (m *MatchRepositoryMock) ListForUser(ctx context.Context, userID int64) ([]models.MatchSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.MatchSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.MatchSummary)
	}
	return list, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, matchID, senderID int64, content string) (models.Message, error) {
	args := m.Called(ctx, matchID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) History(ctx context.Context, matchID, afterSeq int64, limit int) ([]models.Message, error) {
	args := m.Called(ctx, matchID, afterSeq, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type BlockRepositoryMock struct {
	mock.Mock
}

func (m *BlockRepositoryMock) Block(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

func (m *BlockRepositoryMock) PairBlocked(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) GetUser(ctx context.Context, userID int64) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *ProfileServiceMock) IsBlocked(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

type LikeCounterMock struct {
	mock.Mock
}

func (m *LikeCounterMock) GetLikeCount(ctx context.Context, userID int64) (int64, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *LikeCounterMock) SetLikeCount(ctx context.Context, userID int64, count int64) error {
	args := m.Called(ctx, userID, count)
	return args.Error(0)
}

func (m *LikeCounterMock) IncrLikeCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *LikeCounterMock) DecrLikeCount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) NotifyMatch(match models.Match) {
	m.Called(match)
}

func (m *NotifierMock) NotifyMessage(userID int64, msg models.Message) {
	m.Called(userID, msg)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any, headers map[string]string) error {
	args := m.Called(ctx, routingKey, event, headers)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

type CoreMock struct {
	mock.Mock
}

func (m *CoreMock) RecordSwipe(ctx context.Context, swiperID, targetID int64, liked bool) (*models.Match, error) {
	args := m.Called(ctx, swiperID, targetID, liked)
	var match *models.Match
	if val := args.Get(0); val != nil {
		match = val.(*models.Match)
	}
	return match, args.Error(1)
}

func (m *CoreMock) MatchesFor(ctx context.Context, userID int64) ([]models.MatchSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.MatchSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.MatchSummary)
	}
	return list, args.Error(1)
}

func (m *CoreMock) NewLikers(ctx context.Context, userID int64, token string) ([]models.Liker, int64, *string, error) {
	args := m.Called(ctx, userID, token)
	var likers []models.Liker
	if val := args.Get(0); val != nil {
		likers = val.([]models.Liker)
	}
	var next *string
	if val := args.Get(2); val != nil {
		next = val.(*string)
	}
	return likers, args.Get(1).(int64), next, args.Error(3)
}

func (m *CoreMock) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *CoreMock) History(ctx context.Context, userID, otherUserID int64, token string, limit int) ([]models.Message, *string, error) {
	args := m.Called(ctx, userID, otherUserID, token, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	var next *string
	if val := args.Get(1); val != nil {
		next = val.(*string)
	}
	return msgs, next, args.Error(2)
}

func (m *CoreMock) Block(ctx context.Context, blockerID, blockedID int64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

var _ repositories.SwipeRepository = (*SwipeRepositoryMock)(nil)
var _ repositories.MatchRepository = (*MatchRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.BlockRepository = (*BlockRepositoryMock)(nil)
var _ profile.Service = (*ProfileServiceMock)(nil)
var _ cache.LikeCounter = (*LikeCounterMock)(nil)
var _ service.Notifier = (*NotifierMock)(nil)
var _ rabbitmq.Publisher = (*PublisherMock)(nil)
var _ handlers.Core = (*CoreMock)(nil)
