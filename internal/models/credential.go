package models

import (
	"time"
)

// Credential roles.
const (
	// RoleAdmin is a tenant-scoped administrator.
	RoleAdmin = "admin"
	// RoleSuperAdmin is the global administrator tier.
	RoleSuperAdmin = "superadmin"
)

// Credential represents an administrator account in the credentials store.
// Tenant admins carry a tenant ID and a derived database name; the
// superadmin tier lives in configuration, not in this table.
type Credential struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name     string `gorm:"type:text"`                      // Optional display name.
	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	Role         string `gorm:"type:text;not null;default:admin"` // admin or superadmin.
	TenantID     string `gorm:"type:text;index"`                  // Owning tenant, required for role=admin.
	DatabaseName string `gorm:"type:text"`                        // Explicit override of the derived database name.

	IsActive bool `gorm:"not null;default:true"` // Whether the admin can sign in.

	CreatedAt time.Time  `gorm:"not null;autoCreateTime"` // Creation timestamp.
	LastLogin *time.Time // Last successful authentication.
}

// TableName keeps the historical collection name.
func (Credential) TableName() string { return "credentials" }
