package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"match-service/internal/models"
	"match-service/internal/pagination"
	"match-service/internal/rabbitmq"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

func TestSendMessageStoresThenPushes(t *testing.T) {
	svc, deps := newTestService(t)
	match := models.Match{ID: 4, UserAID: 1, UserBID: 2}
	stored := models.Message{ID: 10, MatchID: 4, Seq: 1, SenderID: 1, Content: "hi"}

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(match, nil).Once()
	deps.blocks.On("PairBlocked", mock.Anything, int64(1), int64(2)).Return(false, nil)
	deps.profiles.On("IsBlocked", mock.Anything, int64(1), int64(2)).Return(false, nil)
	deps.messages.On("Create", mock.Anything, int64(4), int64(1), "hi").Return(stored, nil).Once()
	deps.notifier.On("NotifyMessage", int64(2), stored).Return().Once()
	deps.publisher.On("Publish", mock.Anything, rabbitmq.KeyMessageSent, mock.Anything, mock.Anything).Return(nil).Once()

	msg, err := svc.SendMessage(context.Background(), 1, 2, "hi")
	require.NoError(t, err)
	assert.Equal(t, stored, msg)

	deps.notifier.AssertExpectations(t)
	deps.messages.AssertExpectations(t)
}

func TestSendMessageTrimsContent(t *testing.T) {
	svc, deps := newTestService(t)
	match := models.Match{ID: 4, UserAID: 1, UserBID: 2}

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(match, nil)
	deps.blocks.On("PairBlocked", mock.Anything, int64(1), int64(2)).Return(false, nil)
	deps.profiles.On("IsBlocked", mock.Anything, int64(1), int64(2)).Return(false, nil)
	deps.messages.On("Create", mock.Anything, int64(4), int64(1), "hello").
		Return(models.Message{ID: 1, MatchID: 4, Seq: 1, SenderID: 1, Content: "hello"}, nil).Once()
	deps.notifier.On("NotifyMessage", mock.Anything, mock.Anything).Return()
	deps.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.SendMessage(context.Background(), 1, 2, "  hello  ")
	require.NoError(t, err)

	deps.messages.AssertExpectations(t)
}

func TestSendMessageEmptyContent(t *testing.T) {
	svc, deps := newTestService(t)

	_, err := svc.SendMessage(context.Background(), 1, 2, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	deps.matches.AssertNotCalled(t, "GetByPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageWithoutMatch(t *testing.T) {
	svc, deps := newTestService(t)

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(3)).
		Return(models.Match{}, repositories.ErrMatchNotFound)

	_, err := svc.SendMessage(context.Background(), 1, 3, "hi")
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)
}

func TestSendMessageBlockedPair(t *testing.T) {
	svc, deps := newTestService(t)
	match := models.Match{ID: 4, UserAID: 1, UserBID: 2}

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(match, nil)
	deps.blocks.On("PairBlocked", mock.Anything, int64(1), int64(2)).Return(true, nil)

	_, err := svc.SendMessage(context.Background(), 1, 2, "hi")
	assert.ErrorIs(t, err, service.ErrBlocked)

	deps.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.notifier.AssertNotCalled(t, "NotifyMessage", mock.Anything, mock.Anything)
}

func TestHistoryFullPageYieldsCursor(t *testing.T) {
	svc, deps := newTestService(t)
	match := models.Match{ID: 4, UserAID: 1, UserBID: 2}

	page := make([]models.Message, 3)
	for i := range page {
		page[i] = models.Message{ID: int64(i + 1), MatchID: 4, Seq: int64(i + 1), SenderID: 1, Content: "m"}
	}

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(match, nil)
	deps.messages.On("History", mock.Anything, int64(4), int64(0), 3).Return(page, nil)

	msgs, next, err := svc.History(context.Background(), 1, 2, "", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NotNil(t, next)

	cursor, err := pagination.DecodeMessage(*next)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cursor.Seq)
}

func TestHistoryResumesAfterCursor(t *testing.T) {
	svc, deps := newTestService(t)
	match := models.Match{ID: 4, UserAID: 1, UserBID: 2}
	token := pagination.EncodeMessage(pagination.MessageCursor{Seq: 5})

	deps.matches.On("GetByPair", mock.Anything, int64(1), int64(2)).Return(match, nil)
	deps.messages.On("History", mock.Anything, int64(4), int64(5), 51).
		Return([]models.Message{{ID: 6, MatchID: 4, Seq: 6, SenderID: 2, Content: "later"}}, nil)

	msgs, next, err := svc.History(context.Background(), 1, 2, token, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(6), msgs[0].Seq)
	assert.Nil(t, next)
}

func TestHistoryInvalidCursor(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.History(context.Background(), 1, 2, "not-a-cursor", 10)
	assert.ErrorIs(t, err, service.ErrInvalidCursor)
}

func TestBlockPublishesOnlyOnFirstBlock(t *testing.T) {
	svc, deps := newTestService(t)

	deps.blocks.On("Block", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()
	deps.publisher.On("Publish", mock.Anything, rabbitmq.KeyUserBlocked, mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, svc.Block(context.Background(), 1, 2))

	deps.blocks.On("Block", mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	require.NoError(t, svc.Block(context.Background(), 1, 2))

	deps.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestBlockSelf(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Block(context.Background(), 7, 7)
	assert.ErrorIs(t, err, service.ErrSelfBlock)
}
