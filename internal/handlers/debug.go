package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/observability"
	"match-service/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.AuditEmitter, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		requestID := observability.RequestIDFromRequest(c.Request)
		emitter.Emit(c.Request.Context(), "INFO", "audit test", requestID, nil)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
