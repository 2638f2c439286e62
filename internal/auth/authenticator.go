package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/models"
	"github.com/lumora-ai/chatbot-admin/internal/security"
	"github.com/lumora-ai/chatbot-admin/internal/tenant"
)

// ErrInvalidCredentials indicates a failed authentication. Unknown users,
// wrong passwords and disabled accounts all map here so the response never
// reveals which case occurred.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Principal is the authenticated identity and its routing scope, carried
// in the session token and nowhere else.
type Principal struct {
	Username     string
	Role         string
	TenantID     string
	DatabaseName string
}

// SuperAdmin reports whether the principal has the global tier.
func (p Principal) SuperAdmin() bool { return p.Role == models.RoleSuperAdmin }

// Authenticator decides the trust tier for a username/password pair and
// verifies credentials. It is stateless; the only side effect of a
// successful authentication is the last-login timestamp write.
type Authenticator struct {
	creds *credstore.Gateway

	superUsername string
	superPassword string
	authKey       string
}

// NewAuthenticator constructs an Authenticator over the credentials store.
func NewAuthenticator(creds *credstore.Gateway, superUsername, superPassword, authKey string) *Authenticator {
	return &Authenticator{
		creds:         creds,
		superUsername: superUsername,
		superPassword: superPassword,
		authKey:       authKey,
	}
}

// Authenticate verifies a username/password pair and returns the resulting
// principal. The configured superadmin is checked first, in constant time
// and without touching the store; everything else resolves against the
// credentials database.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if a.matchesSuperAdmin(username, password) {
		return &Principal{Username: username, Role: models.RoleSuperAdmin}, nil
	}

	cred, errFind := a.creds.FindByUsername(ctx, username)
	if errFind != nil {
		if errors.Is(errFind, credstore.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errFind
	}

	if !cred.IsActive {
		log.WithField("username", username).Info("login rejected for inactive admin")
		return nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(cred.Password, password, a.authKey) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if errTouch := a.creds.TouchLastLogin(ctx, cred.ID, now); errTouch != nil {
		// Login still succeeds; the timestamp is advisory.
		log.WithError(errTouch).WithField("username", username).Warn("failed to record last login")
	}

	databaseName := strings.TrimSpace(cred.DatabaseName)
	if databaseName == "" {
		databaseName = tenant.BuildDatabaseName(cred.TenantID)
	}

	return &Principal{
		Username:     cred.Username,
		Role:         cred.Role,
		TenantID:     cred.TenantID,
		DatabaseName: databaseName,
	}, nil
}

// matchesSuperAdmin compares both fields in constant time, combining the
// results so neither comparison short-circuits.
func (a *Authenticator) matchesSuperAdmin(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.superUsername))
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(a.superPassword))
	return userMatch&passMatch == 1
}
