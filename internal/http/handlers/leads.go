package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// LeadHandler serves captured leads from tenant databases.
type LeadHandler struct {
	router    *db.Router
	directory *tenant.Directory
}

// NewLeadHandler constructs a LeadHandler.
func NewLeadHandler(router *db.Router, directory *tenant.Directory) *LeadHandler {
	return &LeadHandler{router: router, directory: directory}
}

// List returns leads within the caller's scope, newest first. Superadmin
// requests aggregate across tenants and tag each row with its tenant. An
// optional ?search= filters by contact name or email.
func (h *LeadHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	search := strings.TrimSpace(c.Query("search"))

	databases := targetDatabases(c, principal, h.directory)
	results, failed := collectAcross(c.Request.Context(), databases, func(ctx context.Context, database string) ([]models.Lead, error) {
		return h.fetch(ctx, database, search)
	})
	if len(databases) > 0 && failed == len(databases) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	out := make([]gin.H, 0)
	for _, database := range databases {
		tenantID := tenant.IDFromDatabaseName(database)
		for _, lead := range results[database] {
			out = append(out, leadJSON(lead, tenantID))
		}
	}
	c.JSON(http.StatusOK, out)
}

// fetch loads leads of one tenant database, newest first, optionally
// filtered by a case-insensitive name/email match.
func (h *LeadHandler) fetch(ctx context.Context, database, search string) ([]models.Lead, error) {
	handle, errHandle := h.router.Handle(database, &models.Lead{})
	if errHandle != nil {
		return nil, errHandle
	}
	query := handle.WithContext(ctx).Order("created_at DESC")
	if search != "" {
		pattern := db.NormalizeLikePattern(handle, "%"+search+"%")
		nameExpr := db.CaseInsensitiveLikeExpr(handle, "name")
		emailExpr := db.CaseInsensitiveLikeExpr(handle, "email")
		query = query.Where("("+nameExpr+" OR "+emailExpr+")", pattern, pattern)
	}
	var rows []models.Lead
	if errFind := query.Find(&rows).Error; errFind != nil {
		return nil, errFind
	}
	return rows, nil
}

// leadJSON shapes one lead row for the API, tagged with its tenant.
func leadJSON(lead models.Lead, tenantID string) gin.H {
	row := gin.H{
		"id":        lead.ID,
		"name":      lead.Name,
		"email":     lead.Email,
		"message":   lead.Message,
		"createdAt": lead.CreatedAt,
		"_tenant":   tenantID,
	}
	if len(lead.Conversation) > 0 {
		row["conversation"] = json.RawMessage(lead.Conversation)
	}
	return row
}
