package auth

import (
	"net/http"

	"github.com/lumora-ai/chatbot-admin/internal/models"
)

// Trusted request headers carrying the validated principal to downstream
// handlers. The gate strips any client-supplied copies before validation
// and re-injects them afterwards; handlers must read the principal from
// here and never from user input.
const (
	HeaderUsername = "x-user-username"
	HeaderRole     = "x-user-role"
	HeaderTenant   = "x-user-tenant"
	HeaderDatabase = "x-user-database"
)

// StripPrincipalHeaders removes all principal headers from a request.
func StripPrincipalHeaders(h http.Header) {
	h.Del(HeaderUsername)
	h.Del(HeaderRole)
	h.Del(HeaderTenant)
	h.Del(HeaderDatabase)
}

// InjectPrincipalHeaders writes a validated principal into the request
// headers. Tenant routing fields are set for tenant admins only.
func InjectPrincipalHeaders(h http.Header, p Principal) {
	h.Set(HeaderUsername, p.Username)
	h.Set(HeaderRole, p.Role)
	if p.Role == models.RoleAdmin {
		h.Set(HeaderTenant, p.TenantID)
		h.Set(HeaderDatabase, p.DatabaseName)
	}
}

// PrincipalFromHeaders reconstructs the principal injected by the gate.
// The second return is false when no validated session accompanied the
// request.
func PrincipalFromHeaders(h http.Header) (Principal, bool) {
	role := h.Get(HeaderRole)
	if role == "" {
		return Principal{}, false
	}
	return Principal{
		Username:     h.Get(HeaderUsername),
		Role:         role,
		TenantID:     h.Get(HeaderTenant),
		DatabaseName: h.Get(HeaderDatabase),
	}, true
}
