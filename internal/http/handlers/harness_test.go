package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/security"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

const testAuthKey = "handler-test-key"

// newTestRouter serves in-memory databases; names listed in unreachable
// fail to establish, simulating a down tenant store.
func newTestRouter(t *testing.T, unreachable ...string) *db.Router {
	t.Helper()
	router := db.NewRouter("file:/tmp/unused", "")
	router.SetOpener(func(dsn string) (*gorm.DB, error) {
		for _, name := range unreachable {
			if strings.Contains(dsn, name) {
				return nil, db.ErrConnect
			}
		}
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})
	return router
}

func seedLead(t *testing.T, router *db.Router, database, name string) {
	t.Helper()
	handle, errHandle := router.Handle(database, &models.Lead{})
	if errHandle != nil {
		t.Fatalf("lead handle %s: %v", database, errHandle)
	}
	lead := models.Lead{Name: name, Email: name + "@example.com", Message: "hello"}
	if errCreate := handle.Create(&lead).Error; errCreate != nil {
		t.Fatalf("seed lead: %v", errCreate)
	}
}

func seedUsage(t *testing.T, router *db.Router, database string, tokens int64) {
	t.Helper()
	handle, errHandle := router.Handle(database, &models.APIUsage{})
	if errHandle != nil {
		t.Fatalf("usage handle %s: %v", database, errHandle)
	}
	row := models.APIUsage{Model: "gpt-4o-mini", TotalTokens: tokens}
	if errCreate := handle.Create(&row).Error; errCreate != nil {
		t.Fatalf("seed usage: %v", errCreate)
	}
}

func seedTenantAdmin(t *testing.T, gateway *credstore.Gateway, username, password, tenantID string) {
	t.Helper()
	hash, errHash := security.HashPassword(password, testAuthKey)
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	cred := models.Credential{
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
		TenantID: tenantID,
		IsActive: true,
	}
	if errCreate := gateway.Create(context.Background(), &cred); errCreate != nil {
		t.Fatalf("seed admin: %v", errCreate)
	}
}

// asPrincipal simulates the gate's trusted header injection.
func asPrincipal(req *http.Request, p auth.Principal) {
	auth.InjectPrincipalHeaders(req.Header, p)
}

func superadminPrincipal() auth.Principal {
	return auth.Principal{Username: "root", Role: models.RoleSuperAdmin}
}

func tenantPrincipal(tenantID string) auth.Principal {
	return auth.Principal{
		Username:     tenantID + "_admin",
		Role:         models.RoleAdmin,
		TenantID:     tenantID,
		DatabaseName: tenant.BuildDatabaseName(tenantID),
	}
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
