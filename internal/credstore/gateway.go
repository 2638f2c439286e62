package credstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lumora-ai/chatbot-admin/internal/db"
	"github.com/lumora-ai/chatbot-admin/internal/models"
)

// ErrNotFound indicates no credential exists for a username.
var ErrNotFound = errors.New("credstore: credential not found")

// Gateway provides access to the dedicated credentials database. The
// underlying connection and model registration are memoized by the router,
// so every caller shares one connection per process.
type Gateway struct {
	router   *db.Router
	database string
}

// New constructs a Gateway over the named credentials database.
func New(router *db.Router, database string) *Gateway {
	return &Gateway{router: router, database: database}
}

// handle resolves the credential model handle on the credentials connection.
func (g *Gateway) handle(ctx context.Context) (*gorm.DB, error) {
	h, errHandle := g.router.Handle(g.database, &models.Credential{})
	if errHandle != nil {
		return nil, errHandle
	}
	return h.WithContext(ctx), nil
}

// FindByUsername fetches a credential by its unique username.
func (g *Gateway) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return nil, errHandle
	}
	var cred models.Credential
	if errFind := h.Where("username = ?", username).First(&cred).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errFind
	}
	return &cred, nil
}

// Create inserts a new credential.
func (g *Gateway) Create(ctx context.Context, cred *models.Credential) error {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return errHandle
	}
	return h.Create(cred).Error
}

// Save persists changes to an existing credential.
func (g *Gateway) Save(ctx context.Context, cred *models.Credential) error {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return errHandle
	}
	return h.Save(cred).Error
}

// List returns all credentials, newest first.
func (g *Gateway) List(ctx context.Context) ([]models.Credential, error) {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return nil, errHandle
	}
	var rows []models.Credential
	if errFind := h.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		return nil, errFind
	}
	return rows, nil
}

// TouchLastLogin records a successful authentication timestamp. This is the
// only mutation on the authentication path.
func (g *Gateway) TouchLastLogin(ctx context.Context, id uint64, at time.Time) error {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return errHandle
	}
	return h.Where("id = ?", id).Update("last_login", at).Error
}

// ActiveTenantIDs returns the deduplicated tenant IDs of active tenant
// admins. Superadmin rows and rows without a tenant are excluded.
func (g *Gateway) ActiveTenantIDs(ctx context.Context) ([]string, error) {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return nil, errHandle
	}
	var ids []string
	errFind := h.
		Distinct("tenant_id").
		Where("role = ? AND is_active = ? AND tenant_id <> ''", models.RoleAdmin, true).
		Order("tenant_id ASC").
		Pluck("tenant_id", &ids).Error
	if errFind != nil {
		return nil, errFind
	}
	return ids, nil
}

// TenantAggregate is one tenant's row of the admin-count aggregation.
type TenantAggregate struct {
	TenantID     string
	DatabaseName string
	AdminCount   int64
}

// AggregateByTenant groups credentials by tenant with admin counts and the
// stored database name, when any row carries one.
func (g *Gateway) AggregateByTenant(ctx context.Context) ([]TenantAggregate, error) {
	h, errHandle := g.handle(ctx)
	if errHandle != nil {
		return nil, errHandle
	}
	var rows []TenantAggregate
	errFind := h.
		Select("tenant_id, MAX(database_name) AS database_name, COUNT(*) AS admin_count").
		Where("tenant_id <> ''").
		Group("tenant_id").
		Order("tenant_id ASC").
		Scan(&rows).Error
	if errFind != nil {
		return nil, errFind
	}
	return rows, nil
}
