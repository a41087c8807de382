// Package schema contains embedded migration files.
package schema

import "embed"

// Directories inside MigrationsFS, one per supported driver.
const (
	PostgresDir = "pgmigrations"
	SQLiteDir   = "sqlitemigrations"
)

// MigrationsFS contains all SQL migration files.
//
//go:embed pgmigrations/*.sql sqlitemigrations/*.sql
var MigrationsFS embed.FS
