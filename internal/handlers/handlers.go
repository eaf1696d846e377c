package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"match-service/internal/models"
	"match-service/internal/repositories"
	"match-service/internal/service"
)

// Core is the service surface the HTTP layer depends on.
type Core interface {
	RecordSwipe(ctx context.Context, swiperID, targetID int64, liked bool) (*models.Match, error)
	MatchesFor(ctx context.Context, userID int64) ([]models.MatchSummary, error)
	NewLikers(ctx context.Context, userID int64, token string) ([]models.Liker, int64, *string, error)
	SendMessage(ctx context.Context, senderID, receiverID int64, content string) (models.Message, error)
	History(ctx context.Context, userID, otherUserID int64, token string, limit int) ([]models.Message, *string, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
}

// Handler exposes the match/chat core over REST.
type Handler struct {
	core Core
}

// NewHandler builds a Handler.
func NewHandler(core Core) *Handler {
	return &Handler{core: core}
}

// RegisterRoutes wires the API routes onto the router.
func (h *Handler) RegisterRoutes(api gin.IRoutes) {
	api.POST("/swipe", h.PostSwipe)
	api.GET("/matches/:user_id", h.ListMatches)
	api.GET("/likes/:user_id", h.ListLikes)
	api.GET("/messages/:user_id/:other_user_id", h.GetMessages)
	api.POST("/messages", h.PostMessage)
	api.POST("/block-user", h.BlockUser)
}

func parseUserParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps core errors to HTTP statuses. Storage-level races never
// reach this point; they are resolved inside the service.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user"})
	case errors.Is(err, service.ErrSelfSwipe),
		errors.Is(err, service.ErrSelfBlock),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "blocked"})
	case errors.Is(err, repositories.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
