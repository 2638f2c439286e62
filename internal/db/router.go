package db

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Router owns the pool of connections to logical databases. Connections are
// established lazily, cached by database name for the process lifetime and
// shared across requests. Establishment failures are returned to the caller
// and never cached, so the next request retries.
type Router struct {
	base    string
	options string

	mu       sync.RWMutex
	conns    map[string]*gorm.DB
	migrated map[string]struct{}

	group singleflight.Group

	// open establishes a connection for a DSN; replaced in tests.
	open func(dsn string) (*gorm.DB, error)
}

// NewRouter constructs a Router deriving per-database DSNs from the base DSN.
func NewRouter(baseDSN, options string) *Router {
	return &Router{
		base:     baseDSN,
		options:  options,
		conns:    make(map[string]*gorm.DB),
		migrated: make(map[string]struct{}),
		open:     Open,
	}
}

// SetOpener overrides connection establishment. Tests use it to serve
// in-memory databases.
func (r *Router) SetOpener(open func(dsn string) (*gorm.DB, error)) {
	r.open = open
}

// Connection returns the cached connection for a logical database,
// establishing it on first use. Concurrent first-time requests for the same
// name are collapsed into a single establishment.
func (r *Router) Connection(databaseName string) (*gorm.DB, error) {
	if conn, ok := r.cached(databaseName); ok {
		return conn, nil
	}

	value, err, _ := r.group.Do("conn:"+databaseName, func() (any, error) {
		if conn, ok := r.cached(databaseName); ok {
			return conn, nil
		}

		dsn, errBuild := BuildDSN(r.base, databaseName, r.options)
		if errBuild != nil {
			return nil, errBuild
		}
		conn, errOpen := r.open(dsn)
		if errOpen != nil {
			return nil, errOpen
		}
		log.WithField("database", databaseName).Info("database connection established")

		r.mu.Lock()
		r.conns[databaseName] = conn
		r.mu.Unlock()
		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*gorm.DB), nil
}

// Handle returns a query handle for a model on a logical database. The
// model's table is migrated exactly once per (database, model) pair; later
// calls reuse the connection without re-registering.
func (r *Router) Handle(databaseName string, model any) (*gorm.DB, error) {
	conn, errConn := r.Connection(databaseName)
	if errConn != nil {
		return nil, errConn
	}

	key := databaseName + "\x00" + fmt.Sprintf("%T", model)
	if r.isMigrated(key) {
		return conn.Model(model), nil
	}

	_, err, _ := r.group.Do("migrate:"+key, func() (any, error) {
		if r.isMigrated(key) {
			return nil, nil
		}
		if errMigrate := conn.AutoMigrate(model); errMigrate != nil {
			return nil, fmt.Errorf("db: migrate %T on %s: %w", model, databaseName, errMigrate)
		}
		r.mu.Lock()
		r.migrated[key] = struct{}{}
		r.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return conn.Model(model), nil
}

// cached returns the connection for a database name when present.
func (r *Router) cached(databaseName string) (*gorm.DB, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[databaseName]
	return conn, ok
}

// isMigrated reports whether a (database, model) pair has been migrated.
func (r *Router) isMigrated(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.migrated[key]
	return ok
}
