package tenant

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
)

// databaseSuffix is appended to a tenant ID to form its database name.
const databaseSuffix = "_chatbot"

// BuildDatabaseName derives the logical database name for a tenant.
// The mapping is deterministic: "sas" -> "sas_chatbot".
func BuildDatabaseName(tenantID string) string {
	return tenantID + databaseSuffix
}

// IDFromDatabaseName reverses BuildDatabaseName for display purposes.
func IDFromDatabaseName(databaseName string) string {
	return strings.TrimSuffix(databaseName, databaseSuffix)
}

// Summary describes one tenant for operator visibility.
type Summary struct {
	TenantID     string `json:"tenantId"`
	DatabaseName string `json:"databaseName"`
	AdminCount   int64  `json:"adminCount"`
}

// Directory derives the set of tenants from the credentials store.
type Directory struct {
	creds *credstore.Gateway
}

// NewDirectory constructs a Directory over the credentials store gateway.
func NewDirectory(creds *credstore.Gateway) *Directory {
	return &Directory{creds: creds}
}

// ListActiveDatabases returns the database names of every active tenant.
// An unreachable store yields an empty set, not an error: callers treat
// "no tenants" as a valid state, and the cause is logged here.
func (d *Directory) ListActiveDatabases(ctx context.Context) []string {
	ids, errList := d.creds.ActiveTenantIDs(ctx)
	if errList != nil {
		log.WithError(errList).Warn("tenant discovery failed, returning empty set")
		return []string{}
	}
	databases := make([]string, 0, len(ids))
	for _, id := range ids {
		databases = append(databases, BuildDatabaseName(id))
	}
	return databases
}

// ListSummaries aggregates admin counts per tenant. Unlike discovery this
// is not on the authentication hot path and surfaces errors to the caller.
func (d *Directory) ListSummaries(ctx context.Context) ([]Summary, error) {
	rows, errAggregate := d.creds.AggregateByTenant(ctx)
	if errAggregate != nil {
		return nil, errAggregate
	}
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		databaseName := row.DatabaseName
		if strings.TrimSpace(databaseName) == "" {
			databaseName = BuildDatabaseName(row.TenantID)
		}
		summaries = append(summaries, Summary{
			TenantID:     row.TenantID,
			DatabaseName: databaseName,
			AdminCount:   row.AdminCount,
		})
	}
	return summaries, nil
}
