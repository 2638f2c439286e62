package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/security"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// AdminHandler manages tenant admin accounts. Superadmin only.
type AdminHandler struct {
	creds   *credstore.Gateway
	authKey string
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(creds *credstore.Gateway, authKey string) *AdminHandler {
	return &AdminHandler{creds: creds, authKey: authKey}
}

// createAdminRequest defines the request body for admin creation.
type createAdminRequest struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	TenantID     string `json:"tenantId"`
	DatabaseName string `json:"databaseName"`
}

// Create adds a tenant admin. The password is hashed before storage and
// the database name is derived from the tenant when not supplied.
func (h *AdminHandler) Create(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	var body createAdminRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	username := strings.TrimSpace(body.Username)
	tenantID := strings.TrimSpace(body.TenantID)
	if username == "" || body.Password == "" || tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and tenantId are required"})
		return
	}

	if _, errFind := h.creds.FindByUsername(c.Request.Context(), username); errFind == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	}

	hash, errHash := security.HashPassword(body.Password, h.authKey)
	if errHash != nil {
		log.WithError(errHash).Error("failed to hash admin password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	databaseName := strings.TrimSpace(body.DatabaseName)
	if databaseName == "" {
		databaseName = tenant.BuildDatabaseName(tenantID)
	}

	cred := models.Credential{
		Name:         strings.TrimSpace(body.Name),
		Username:     username,
		Password:     hash,
		Role:         models.RoleAdmin,
		TenantID:     tenantID,
		DatabaseName: databaseName,
		IsActive:     true,
	}
	if errCreate := h.creds.Create(c.Request.Context(), &cred); errCreate != nil {
		log.WithError(errCreate).Error("failed to create admin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin": gin.H{
			"username":     cred.Username,
			"tenantId":     cred.TenantID,
			"databaseName": cred.DatabaseName,
			"role":         cred.Role,
		},
	})
}

// List returns all admin accounts, newest first, passwords omitted.
func (h *AdminHandler) List(c *gin.Context) {
	if _, ok := requireSuperAdmin(c); !ok {
		return
	}

	rows, errList := h.creds.List(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("failed to list admins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch admins"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		entry := gin.H{
			"username":     row.Username,
			"role":         row.Role,
			"tenantId":     row.TenantID,
			"databaseName": row.DatabaseName,
			"isActive":     row.IsActive,
			"createdAt":    row.CreatedAt,
		}
		if row.Name != "" {
			entry["name"] = row.Name
		}
		if row.LastLogin != nil {
			entry["lastLogin"] = row.LastLogin
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}
