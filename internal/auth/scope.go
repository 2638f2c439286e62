package auth

// Scope is the data-access range a principal resolves to. Exactly one of
// the two shapes holds: all tenant databases, or a single one.
type Scope struct {
	// AllDatabases grants fan-out across every tenant database.
	AllDatabases bool
	// DatabaseName is the single reachable database when AllDatabases is false.
	DatabaseName string
}

// ResolveScope maps a principal to its data-access scope. Every data
// endpoint goes through this one function instead of re-deriving the role
// branch ad hoc.
func ResolveScope(p Principal) Scope {
	if p.SuperAdmin() {
		return Scope{AllDatabases: true}
	}
	return Scope{DatabaseName: p.DatabaseName}
}
