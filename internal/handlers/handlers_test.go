package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"match-service/internal/handlers"
	"match-service/internal/mocks"
	"match-service/internal/models"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

func newTestRouter(core *mocks.CoreMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.NewHandler(core).RegisterRoutes(router.Group("/api"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPostSwipeReturnsMatch(t *testing.T) {
	core := new(mocks.CoreMock)
	match := &models.Match{ID: 7, UserAID: 1, UserBID: 2}
	core.On("RecordSwipe", mock.Anything, int64(2), int64(1), true).Return(match, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/swipe",
		gin.H{"swiperId": 2, "targetId": 1, "liked": true})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Match *models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Match)
	assert.Equal(t, int64(7), resp.Match.ID)
}

func TestPostSwipeNoMatchYieldsNull(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("RecordSwipe", mock.Anything, int64(1), int64(2), true).Return(nil, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/swipe",
		gin.H{"swiperId": 1, "targetId": 2, "liked": true})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"match":null}`, rec.Body.String())
}

func TestPostSwipeMissingLiked(t *testing.T) {
	core := new(mocks.CoreMock)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/swipe",
		gin.H{"swiperId": 1, "targetId": 2})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	core.AssertNotCalled(t, "RecordSwipe", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostSwipeBlockedPair(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("RecordSwipe", mock.Anything, int64(1), int64(2), true).Return(nil, service.ErrBlocked)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/swipe",
		gin.H{"swiperId": 1, "targetId": 2, "liked": true})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListMatches(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("MatchesFor", mock.Anything, int64(1)).
		Return([]models.MatchSummary{{MatchID: 7, UserID: 2}}, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodGet, "/api/matches/1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Matches []models.MatchSummary `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, int64(2), resp.Matches[0].UserID)
}

func TestListMatchesBadUserID(t *testing.T) {
	core := new(mocks.CoreMock)

	rec := doJSON(t, newTestRouter(core), http.MethodGet, "/api/matches/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	core.AssertNotCalled(t, "MatchesFor", mock.Anything, mock.Anything)
}

func TestListLikesWithToken(t *testing.T) {
	core := new(mocks.CoreMock)
	next := "dG9rZW4"
	core.On("NewLikers", mock.Anything, int64(1), "abc").
		Return([]models.Liker{{UserID: 5}}, int64(12), &next, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodGet, "/api/likes/1?pagination_token=abc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count     int64  `json:"count"`
		NextToken string `json:"next_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Count)
	assert.Equal(t, next, resp.NextToken)
}

func TestPostMessageCreated(t *testing.T) {
	core := new(mocks.CoreMock)
	stored := models.Message{ID: 3, MatchID: 7, Seq: 1, SenderID: 1, Content: "hi"}
	core.On("SendMessage", mock.Anything, int64(1), int64(2), "hi").Return(stored, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/messages",
		gin.H{"sender_id": 1, "receiver_id": 2, "content": "hi"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, stored.ID, resp.ID)
	assert.Equal(t, stored.Seq, resp.Seq)
}

func TestPostMessageNoMatch(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("SendMessage", mock.Anything, int64(1), int64(9), "hi").
		Return(nil, repositories.ErrMatchNotFound)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/messages",
		gin.H{"sender_id": 1, "receiver_id": 9, "content": "hi"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMessageMissingContent(t *testing.T) {
	core := new(mocks.CoreMock)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/messages",
		gin.H{"sender_id": 1, "receiver_id": 2})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	core.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMessagesPassesCursorAndLimit(t *testing.T) {
	core := new(mocks.CoreMock)
	next := "bmV4dA"
	core.On("History", mock.Anything, int64(1), int64(2), "tok", 10).
		Return([]models.Message{{ID: 1, MatchID: 7, Seq: 1, SenderID: 2, Content: "hey"}}, &next, nil)

	rec := doJSON(t, newTestRouter(core), http.MethodGet, "/api/messages/1/2?cursor=tok&limit=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages   []models.Message `json:"messages"`
		NextCursor string           `json:"next_cursor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, next, resp.NextCursor)
	core.AssertExpectations(t)
}

func TestGetMessagesInvalidCursor(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("History", mock.Anything, int64(1), int64(2), "bad", 0).
		Return(nil, nil, service.ErrInvalidCursor)

	rec := doJSON(t, newTestRouter(core), http.MethodGet, "/api/messages/1/2?cursor=bad", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlockUser(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("Block", mock.Anything, int64(1), int64(2)).Return(nil)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/block-user",
		gin.H{"blockerId": 1, "blockedId": 2})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBlockUserSelf(t *testing.T) {
	core := new(mocks.CoreMock)
	core.On("Block", mock.Anything, int64(4), int64(4)).Return(service.ErrSelfBlock)

	rec := doJSON(t, newTestRouter(core), http.MethodPost, "/api/block-user",
		gin.H{"blockerId": 4, "blockedId": 4})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
