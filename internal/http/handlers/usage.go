package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// UsageHandler serves API usage records from tenant databases.
type UsageHandler struct {
	router    *db.Router
	directory *tenant.Directory
}

// NewUsageHandler constructs a UsageHandler.
func NewUsageHandler(router *db.Router, directory *tenant.Directory) *UsageHandler {
	return &UsageHandler{router: router, directory: directory}
}

// List returns usage records within the caller's scope, newest first.
// The scoping contract matches the leads endpoint.
func (h *UsageHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	databases := targetDatabases(c, principal, h.directory)
	results, failed := collectAcross(c.Request.Context(), databases, h.fetch)
	if len(databases) > 0 && failed == len(databases) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage"})
		return
	}

	out := make([]gin.H, 0)
	for _, database := range databases {
		tenantID := tenant.IDFromDatabaseName(database)
		for _, row := range results[database] {
			out = append(out, usageJSON(row, tenantID))
		}
	}
	c.JSON(http.StatusOK, out)
}

// fetch loads all usage records of one tenant database, newest first.
func (h *UsageHandler) fetch(ctx context.Context, database string) ([]models.APIUsage, error) {
	handle, errHandle := h.router.Handle(database, &models.APIUsage{})
	if errHandle != nil {
		return nil, errHandle
	}
	var rows []models.APIUsage
	if errFind := handle.WithContext(ctx).Order("timestamp DESC").Find(&rows).Error; errFind != nil {
		return nil, errFind
	}
	return rows, nil
}

// usageJSON shapes one usage row for the API, tagged with its tenant.
func usageJSON(row models.APIUsage, tenantID string) gin.H {
	return gin.H{
		"id":               row.ID,
		"model":            row.Model,
		"openaiTokens":     row.OpenAITokens,
		"promptTokens":     row.PromptTokens,
		"completionTokens": row.CompletionTokens,
		"totalTokens":      row.TotalTokens,
		"userType":         row.UserType,
		"userMessage":      row.UserMessage,
		"timestamp":        row.Timestamp,
		"_tenant":          tenantID,
	}
}
