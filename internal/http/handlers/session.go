package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the client-held session token cookie.
const SessionCookieName = "token"

// SetSessionCookie attaches a session token to the response. The cookie is
// HTTP-only, SameSite=Lax, path "/", and secure in production.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
