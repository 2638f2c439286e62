package db

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BuildDSN derives the DSN for a logical database from a base DSN that
// names a server (or, for SQLite, a directory) without a database.
//
// Postgres URL base:      postgres://app@host:5432 + "sas_chatbot"
//                      -> postgres://app@host:5432/sas_chatbot
// Postgres keyword base:  host=localhost user=app + "sas_chatbot"
//                      -> host=localhost user=app dbname=sas_chatbot
// SQLite directory base:  file:/var/data + "sas_chatbot"
//                      -> file:/var/data/sas_chatbot.db
//
// options, when non-empty, is appended verbatim for URL-style DSNs
// (e.g. "?sslmode=disable") and as extra keywords otherwise.
func BuildDSN(base, databaseName, options string) (string, error) {
	trimmedBase := strings.TrimSpace(base)
	name := strings.TrimSpace(databaseName)
	if trimmedBase == "" {
		return "", fmt.Errorf("db: empty base dsn")
	}
	if name == "" {
		return "", fmt.Errorf("db: empty database name")
	}

	dialect, errDetect := detectDialectFromDSN(trimmedBase)
	if errDetect != nil {
		return "", errDetect
	}

	switch dialect {
	case DialectPostgres:
		if strings.Contains(trimmedBase, "://") {
			return strings.TrimRight(trimmedBase, "/") + "/" + name + options, nil
		}
		dsn := trimmedBase + " dbname=" + name
		if opts := strings.TrimSpace(options); opts != "" {
			dsn += " " + opts
		}
		return dsn, nil
	case DialectSQLite:
		dir := sqlitePathFromDSN(normalizeSQLiteDSN(trimmedBase))
		if dir == "" {
			return "", fmt.Errorf("db: sqlite base dsn must name a directory: %s", base)
		}
		dsn := "file:" + filepath.Join(dir, name+".db")
		if opts := strings.TrimSpace(options); opts != "" {
			dsn += opts
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("db: unsupported dialect: %s", dialect)
	}
}
