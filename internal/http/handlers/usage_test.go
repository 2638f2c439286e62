package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

func newUsageEngine(t *testing.T, router *db.Router) *gin.Engine {
	t.Helper()
	gateway := credstore.New(router, "admin_credentials")
	seedTenantAdmin(t, gateway, "a_admin", "x", "a")
	seedTenantAdmin(t, gateway, "b_admin", "x", "b")
	directory := tenant.NewDirectory(gateway)

	engine := newEngine()
	engine.GET("/api/usage", NewUsageHandler(router, directory).List)
	return engine
}

func TestUsageSuperAdminAggregatesAcrossTenants(t *testing.T) {
	router := newTestRouter(t)
	engine := newUsageEngine(t, router)
	seedUsage(t, router, "a_chatbot", 120)
	seedUsage(t, router, "b_chatbot", 75)
	seedUsage(t, router, "b_chatbot", 40)

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	counts := countByTenant(rows)
	if counts["a"] != 1 || counts["b"] != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if _, ok := rows[0]["totalTokens"]; !ok {
		t.Fatalf("row missing totalTokens: %v", rows[0])
	}
}

func TestUsageTenantAdminScopedToOwnDatabase(t *testing.T) {
	router := newTestRouter(t)
	engine := newUsageEngine(t, router)
	seedUsage(t, router, "a_chatbot", 120)
	seedUsage(t, router, "b_chatbot", 75)

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	asPrincipal(req, tenantPrincipal("b"))
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 1 || rows[0]["_tenant"] != "b" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestUsageSurvivesUnreachableTenant(t *testing.T) {
	router := newTestRouter(t, "a_chatbot")
	engine := newUsageEngine(t, router)
	seedUsage(t, router, "b_chatbot", 75)

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 1 || rows[0]["_tenant"] != "b" {
		t.Fatalf("rows = %v", rows)
	}
}
