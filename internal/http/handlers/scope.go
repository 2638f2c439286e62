package handlers

import (
	"context"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lumora-ai/chatbot-admin/internal/auth"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// fanOutLimit bounds concurrent per-tenant queries during aggregation.
const fanOutLimit = 4

// targetDatabases resolves which logical databases a request may read.
// A tenant admin is confined to its own database regardless of any
// selector; a superadmin targets one tenant via ?db=<tenantId> or fans
// out across the whole directory.
func targetDatabases(c *gin.Context, principal auth.Principal, directory *tenant.Directory) []string {
	scope := auth.ResolveScope(principal)
	if !scope.AllDatabases {
		return []string{scope.DatabaseName}
	}
	if selector := strings.TrimSpace(c.Query("db")); selector != "" {
		return []string{tenant.BuildDatabaseName(selector)}
	}
	return directory.ListActiveDatabases(c.Request.Context())
}

// collectAcross fetches rows from every target database concurrently.
// Per-tenant failures are logged and skipped so one unreachable tenant
// does not fail the whole request; the failed count lets callers
// distinguish "everything down" from a partial result.
func collectAcross[T any](ctx context.Context, databases []string, fetch func(ctx context.Context, database string) ([]T, error)) (map[string][]T, int) {
	var (
		mu      sync.Mutex
		results = make(map[string][]T, len(databases))
		failed  int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(fanOutLimit)
	for _, database := range databases {
		database := database
		group.Go(func() error {
			rows, errFetch := fetch(groupCtx, database)
			mu.Lock()
			defer mu.Unlock()
			if errFetch != nil {
				failed++
				log.WithError(errFetch).WithField("database", database).Warn("skipping unreachable tenant database")
				return nil
			}
			results[database] = rows
			return nil
		})
	}
	_ = group.Wait()

	return results, failed
}
