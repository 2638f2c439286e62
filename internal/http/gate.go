package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/http/handlers"
	"github.com/lumora-ai/chatbot-admin/internal/security"
)

// Interactive surface paths enforced by the gate.
const (
	loginPath       = "/login"
	adminPathPrefix = "/admin"
)

// GateConfig configures the session gate.
type GateConfig struct {
	// Secret verifies session token signatures.
	Secret string
	// Secure marks cleared cookies as secure (production).
	Secure bool
}

// SessionGate evaluates every inbound request before it reaches a handler:
// it strips any client-supplied principal headers, validates the session
// cookie, enforces the redirect rules of the interactive surface and
// injects the validated principal as trusted request metadata. API paths
// are never redirected; an unauthenticated API request passes through and
// the endpoint makes its own access decision.
func SessionGate(cfg GateConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Principal headers are only ever set here, after validation.
		auth.StripPrincipalHeaders(c.Request.Header)

		path := c.Request.URL.Path
		token, errCookie := c.Cookie(handlers.SessionCookieName)
		hasToken := errCookie == nil && token != ""

		if !hasToken {
			if underAdminSurface(path) {
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		claims, errParse := security.ParseSessionToken(cfg.Secret, token)
		if errParse != nil {
			// Tampered and expired tokens are treated identically: the
			// session is gone and the stale cookie is cleared.
			log.WithError(errParse).Debug("session token rejected")
			handlers.ClearSessionCookie(c, cfg.Secure)
			if isInteractive(path) {
				c.Redirect(http.StatusFound, loginPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		principal := auth.Principal{
			Username:     claims.Username,
			Role:         claims.Role,
			TenantID:     claims.TenantID,
			DatabaseName: claims.DatabaseName,
		}
		auth.InjectPrincipalHeaders(c.Request.Header, principal)

		if path == loginPath {
			c.Redirect(http.StatusFound, adminPathPrefix)
			c.Abort()
			return
		}
		c.Next()
	}
}

// underAdminSurface reports whether a path belongs to the protected
// interactive surface.
func underAdminSurface(path string) bool {
	return path == adminPathPrefix || strings.HasPrefix(path, adminPathPrefix+"/")
}

// isInteractive reports whether the gate owns redirect handling for a path.
func isInteractive(path string) bool {
	return path == loginPath || underAdminSurface(path)
}
