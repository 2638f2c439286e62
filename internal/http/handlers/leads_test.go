package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// newLeadEngine wires the lead endpoint over a two-tenant directory.
func newLeadEngine(t *testing.T, router *db.Router) *gin.Engine {
	t.Helper()
	gateway := credstore.New(router, "admin_credentials")
	seedTenantAdmin(t, gateway, "a_admin", "x", "a")
	seedTenantAdmin(t, gateway, "b_admin", "x", "b")
	directory := tenant.NewDirectory(gateway)

	engine := newEngine()
	engine.GET("/api/leads", NewLeadHandler(router, directory).List)
	return engine
}

func decodeRows(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var rows []map[string]any
	if errDecode := json.Unmarshal(body, &rows); errDecode != nil {
		t.Fatalf("decode rows: %v", errDecode)
	}
	return rows
}

func countByTenant(rows []map[string]any) map[string]int {
	counts := map[string]int{}
	for _, row := range rows {
		tenantID, _ := row["_tenant"].(string)
		counts[tenantID]++
	}
	return counts
}

func TestLeadsSuperAdminAggregatesAcrossTenants(t *testing.T) {
	router := newTestRouter(t)
	engine := newLeadEngine(t, router)
	seedLead(t, router, "a_chatbot", "alice")
	seedLead(t, router, "a_chatbot", "aaron")
	seedLead(t, router, "b_chatbot", "bob")
	seedLead(t, router, "b_chatbot", "bella")
	seedLead(t, router, "b_chatbot", "bruno")

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	counts := countByTenant(rows)
	if counts["a"] != 2 || counts["b"] != 3 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestLeadsSuperAdminSurvivesUnreachableTenant(t *testing.T) {
	router := newTestRouter(t, "b_chatbot")
	engine := newLeadEngine(t, router)
	seedLead(t, router, "a_chatbot", "alice")
	seedLead(t, router, "a_chatbot", "aaron")

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (partial result)", len(rows))
	}
	if counts := countByTenant(rows); counts["a"] != 2 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestLeadsSuperAdminExplicitSelector(t *testing.T) {
	router := newTestRouter(t)
	engine := newLeadEngine(t, router)
	seedLead(t, router, "a_chatbot", "alice")
	seedLead(t, router, "b_chatbot", "bob")

	req := httptest.NewRequest(http.MethodGet, "/api/leads?db=a", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0]["_tenant"] != "a" {
		t.Fatalf("row = %v", rows[0])
	}
}

func TestLeadsTenantAdminConfinedToOwnDatabase(t *testing.T) {
	router := newTestRouter(t)
	engine := newLeadEngine(t, router)
	seedLead(t, router, "a_chatbot", "alice")
	seedLead(t, router, "b_chatbot", "bob")

	// The selector must be ignored for tenant admins.
	req := httptest.NewRequest(http.MethodGet, "/api/leads?db=b", nil)
	asPrincipal(req, tenantPrincipal("a"))
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 1 || rows[0]["_tenant"] != "a" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestLeadsSearchFiltersByNameOrEmail(t *testing.T) {
	router := newTestRouter(t)
	engine := newLeadEngine(t, router)
	seedLead(t, router, "a_chatbot", "Alice")
	seedLead(t, router, "a_chatbot", "aaron")
	seedLead(t, router, "b_chatbot", "bob")

	req := httptest.NewRequest(http.MethodGet, "/api/leads?search=ALICE", nil)
	asPrincipal(req, superadminPrincipal())
	w := serve(engine, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	rows := decodeRows(t, w.Body.Bytes())
	if len(rows) != 1 || rows[0]["name"] != "Alice" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestLeadsRequiresSession(t *testing.T) {
	router := newTestRouter(t)
	engine := newLeadEngine(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	if w := serve(engine, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLeadsTenantAdminFailureSurfaces(t *testing.T) {
	router := newTestRouter(t, "a_chatbot")
	engine := newLeadEngine(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	asPrincipal(req, tenantPrincipal("a"))
	if w := serve(engine, req); w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
