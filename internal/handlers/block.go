package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockUser records a block relation between two users.
func (h *Handler) BlockUser(c *gin.Context) {
	var req struct {
		BlockerID int64 `json:"blockerId" binding:"required"`
		BlockedID int64 `json:"blockedId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.core.Block(c.Request.Context(), req.BlockerID, req.BlockedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
