package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/security"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	authenticator *auth.Authenticator
	jwtSecret     string
	sessionTTL    time.Duration
	secureCookies bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authenticator *auth.Authenticator, jwtSecret string, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtSecret:     jwtSecret,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a username/password pair and issues the session
// cookie on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	username := strings.TrimSpace(body.Username)
	password := body.Password
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	principal, errAuth := h.authenticator.Authenticate(c.Request.Context(), username, password)
	if errAuth != nil {
		if errors.Is(errAuth, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.WithError(errAuth).Error("authentication unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication unavailable"})
		return
	}

	token, errToken := security.IssueSessionToken(
		h.jwtSecret,
		principal.Username,
		principal.Role,
		principal.TenantID,
		principal.DatabaseName,
		h.sessionTTL,
	)
	if errToken != nil {
		log.WithError(errToken).Error("failed to issue session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}

	SetSessionCookie(c, token, int(h.sessionTTL.Seconds()), h.secureCookies)

	user := gin.H{
		"username": principal.Username,
		"role":     principal.Role,
	}
	if principal.Role == models.RoleAdmin {
		user["tenantId"] = principal.TenantID
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout clears the session cookie and sends the client back to login.
func (h *AuthHandler) Logout(c *gin.Context) {
	ClearSessionCookie(c, h.secureCookies)
	c.Redirect(http.StatusFound, "/login")
}
