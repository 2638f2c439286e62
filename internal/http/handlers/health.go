package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	router      *db.Router
	credentials string
}

// NewHealthHandler constructs a HealthHandler over the credentials database.
func NewHealthHandler(router *db.Router, credentialsDatabase string) *HealthHandler {
	return &HealthHandler{router: router, credentials: credentialsDatabase}
}

// Healthz checks credentials store connectivity and returns status.
func (h *HealthHandler) Healthz(c *gin.Context) {
	conn, errHandle := h.router.Handle(h.credentials, &models.Credential{})
	if errHandle != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	sqlDB, errDB := conn.DB()
	if errDB != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	if errPing := sqlDB.PingContext(c.Request.Context()); errPing != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
