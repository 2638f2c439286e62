package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/config"
	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/http/handlers"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// Services bundles the components the HTTP layer depends on. Everything is
// constructed once at process start and injected here; no package-level
// state.
type Services struct {
	Config        *config.Config
	Router        *db.Router
	Directory     *tenant.Directory
	Credentials   *credstore.Gateway
	Authenticator *auth.Authenticator
}

// NewEngine assembles the gin engine: recovery, request IDs, the session
// gate, and every route.
func NewEngine(s Services) *gin.Engine {
	if s.Config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog())
	engine.Use(SessionGate(GateConfig{
		Secret: s.Config.JWTSecret,
		Secure: s.Config.Production(),
	}))

	authHandler := handlers.NewAuthHandler(s.Authenticator, s.Config.JWTSecret, s.Config.SessionTTL, s.Config.Production())
	databaseHandler := handlers.NewDatabaseHandler(s.Directory)
	leadHandler := handlers.NewLeadHandler(s.Router, s.Directory)
	usageHandler := handlers.NewUsageHandler(s.Router, s.Directory)
	adminHandler := handlers.NewAdminHandler(s.Credentials, s.Config.AuthKey)
	healthHandler := handlers.NewHealthHandler(s.Router, s.Config.CredentialsDatabase)

	api := engine.Group("/api")
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/databases", databaseHandler.List)
	api.GET("/tenants", databaseHandler.Summaries)
	api.GET("/leads", leadHandler.List)
	api.GET("/usage", usageHandler.List)
	api.POST("/admin-users", adminHandler.Create)
	api.GET("/admin-users", adminHandler.List)

	engine.GET("/healthz", healthHandler.Healthz)

	// The admin UI is served elsewhere; these placeholders exist so the
	// gate's redirect targets resolve when the backend runs standalone.
	engine.GET("/login", servePlaceholder("login"))
	engine.GET("/admin", servePlaceholder("admin"))
	engine.GET("/admin/*page", servePlaceholder("admin"))

	return engine
}

// servePlaceholder answers interactive paths with a minimal page marker.
func servePlaceholder(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "%s", name)
	}
}
