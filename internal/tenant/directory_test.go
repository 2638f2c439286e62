package tenant

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
)

func TestBuildDatabaseName(t *testing.T) {
	if got := BuildDatabaseName("sas"); got != "sas_chatbot" {
		t.Fatalf("BuildDatabaseName(sas) = %q", got)
	}
	if got := IDFromDatabaseName("sas_chatbot"); got != "sas" {
		t.Fatalf("IDFromDatabaseName(sas_chatbot) = %q", got)
	}
}

// newTestGateway backs a gateway with an in-memory credentials database.
func newTestGateway(t *testing.T) *credstore.Gateway {
	t.Helper()
	router := db.NewRouter("file:/tmp/unused", "")
	router.SetOpener(func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})
	return credstore.New(router, "admin_credentials")
}

func seedCredential(t *testing.T, gateway *credstore.Gateway, cred models.Credential) {
	t.Helper()
	if errCreate := gateway.Create(context.Background(), &cred); errCreate != nil {
		t.Fatalf("seed credential %s: %v", cred.Username, errCreate)
	}
}

func TestListActiveDatabases(t *testing.T) {
	gateway := newTestGateway(t)
	seedCredential(t, gateway, models.Credential{Username: "a1", Password: "x", Role: models.RoleAdmin, TenantID: "ai", IsActive: true})
	seedCredential(t, gateway, models.Credential{Username: "a2", Password: "x", Role: models.RoleAdmin, TenantID: "ai", IsActive: true})
	seedCredential(t, gateway, models.Credential{Username: "s1", Password: "x", Role: models.RoleAdmin, TenantID: "sas", IsActive: true})
	seedCredential(t, gateway, models.Credential{Username: "dormant", Password: "x", Role: models.RoleAdmin, TenantID: "old", IsActive: false})

	directory := NewDirectory(gateway)
	databases := directory.ListActiveDatabases(context.Background())

	want := []string{"ai_chatbot", "sas_chatbot"}
	if len(databases) != len(want) {
		t.Fatalf("databases = %v, want %v", databases, want)
	}
	for i, name := range want {
		if databases[i] != name {
			t.Fatalf("databases = %v, want %v", databases, want)
		}
	}
}

func TestListActiveDatabasesEmptyStore(t *testing.T) {
	gateway := newTestGateway(t)
	directory := NewDirectory(gateway)

	databases := directory.ListActiveDatabases(context.Background())
	if databases == nil || len(databases) != 0 {
		t.Fatalf("empty store must yield empty set, got %v", databases)
	}
}

func TestListSummaries(t *testing.T) {
	gateway := newTestGateway(t)
	seedCredential(t, gateway, models.Credential{Username: "a1", Password: "x", Role: models.RoleAdmin, TenantID: "ai", IsActive: true})
	seedCredential(t, gateway, models.Credential{Username: "a2", Password: "x", Role: models.RoleAdmin, TenantID: "ai", IsActive: true})
	seedCredential(t, gateway, models.Credential{Username: "s1", Password: "x", Role: models.RoleAdmin, TenantID: "sas", DatabaseName: "sas_custom", IsActive: true})

	directory := NewDirectory(gateway)
	summaries, errList := directory.ListSummaries(context.Background())
	if errList != nil {
		t.Fatalf("list summaries: %v", errList)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].TenantID != "ai" || summaries[0].AdminCount != 2 || summaries[0].DatabaseName != "ai_chatbot" {
		t.Fatalf("ai summary = %+v", summaries[0])
	}
	if summaries[1].TenantID != "sas" || summaries[1].DatabaseName != "sas_custom" {
		t.Fatalf("sas summary = %+v", summaries[1])
	}
}
