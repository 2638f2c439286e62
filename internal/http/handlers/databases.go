package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// DatabaseHandler lists tenant databases for superadmin navigation.
type DatabaseHandler struct {
	directory *tenant.Directory
}

// NewDatabaseHandler constructs a DatabaseHandler.
func NewDatabaseHandler(directory *tenant.Directory) *DatabaseHandler {
	return &DatabaseHandler{directory: directory}
}

// List returns every active tenant database with display metadata.
// Superadmin only.
func (h *DatabaseHandler) List(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	databases := h.directory.ListActiveDatabases(c.Request.Context())
	out := make([]gin.H, 0, len(databases))
	for _, name := range databases {
		tenantID := tenant.IDFromDatabaseName(name)
		out = append(out, gin.H{
			"name":        name,
			"displayName": strings.ToUpper(tenantID) + " Database",
			"tenantId":    tenantID,
			"description": fmt.Sprintf("Database for %s tenant", tenantID),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Summaries returns per-tenant admin counts for operator visibility.
// Superadmin only.
func (h *DatabaseHandler) Summaries(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	summaries, errList := h.directory.ListSummaries(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("failed to aggregate tenants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenants"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
