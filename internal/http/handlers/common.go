package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/models"
)

// requirePrincipal reads the trusted principal injected by the session
// gate. It responds 401 and returns false when the request carried no
// validated session.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromHeaders(c.Request.Header)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return auth.Principal{}, false
	}
	return principal, true
}

// requireSuperAdmin reads the trusted principal and enforces the global
// tier, responding 403 for tenant admins.
func requireSuperAdmin(c *gin.Context) (auth.Principal, bool) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return auth.Principal{}, false
	}
	if principal.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "superadmin role required"})
		return auth.Principal{}, false
	}
	return principal, true
}
