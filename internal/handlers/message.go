package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PostMessage stores a message and pushes it to the recipient.
func (h *Handler) PostMessage(c *gin.Context) {
	var req struct {
		SenderID   int64  `json:"sender_id" binding:"required"`
		ReceiverID int64  `json:"receiver_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.core.SendMessage(c.Request.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the conversation between two users in ascending order,
// resuming after the cursor when one is supplied.
func (h *Handler) GetMessages(c *gin.Context) {
	userID, ok := parseUserParam(c, "user_id")
	if !ok {
		return
	}
	otherID, ok := parseUserParam(c, "other_user_id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	msgs, nextCursor, err := h.core.History(c.Request.Context(), userID, otherID, c.Query("cursor"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"messages": msgs}
	if nextCursor != nil {
		resp["next_cursor"] = *nextCursor
	}
	c.JSON(http.StatusOK, resp)
}
