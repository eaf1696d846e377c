package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostSwipe records a like/skip decision and reports the match, if any.
func (h *Handler) PostSwipe(c *gin.Context) {
	var req struct {
		SwiperID int64 `json:"swiperId" binding:"required"`
		TargetID int64 `json:"targetId" binding:"required"`
		Liked    *bool `json:"liked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.core.RecordSwipe(c.Request.Context(), req.SwiperID, req.TargetID, *req.Liked)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}

// ListMatches returns the user's active matches, newest first.
func (h *Handler) ListMatches(c *gin.Context) {
	userID, ok := parseUserParam(c, "user_id")
	if !ok {
		return
	}

	matches, err := h.core.MatchesFor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// ListLikes returns users who liked the caller and are not matched yet.
func (h *Handler) ListLikes(c *gin.Context) {
	userID, ok := parseUserParam(c, "user_id")
	if !ok {
		return
	}

	likers, count, nextToken, err := h.core.NewLikers(c.Request.Context(), userID, c.Query("pagination_token"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"likers": likers, "count": count}
	if nextToken != nil {
		resp["next_token"] = *nextToken
	}
	c.JSON(http.StatusOK, resp)
}
