// Package drivers opens the storage.Gateway selected by configuration.
package drivers

import (
	"context"
	"fmt"

	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/core/storage/pgxgateway"
	"github.com/jrazmi/taskmanagement/core/storage/sqlitegateway"
	"github.com/jrazmi/taskmanagement/infrastructure/postgresdb"
	"github.com/jrazmi/taskmanagement/infrastructure/sqlitedb"
	"github.com/jrazmi/taskmanagement/schema"
	"github.com/jrazmi/taskmanagement/sdk/environment"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// Supported values of DB_DRIVER.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Config selects the database.
type Config struct {
	Driver         string `env:"DB_DRIVER" default:"sqlite"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" default:"true"`
}

// LoadConfig reads the prefixed driver environment variables.
func LoadConfig(prefix string) (Config, error) {
	var cfg Config
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing driver config: %w", err)
	}
	return cfg, nil
}

// Open connects to the database named by cfg.Driver, reading the driver's
// own settings from prefixed environment variables, and applies pending
// migrations when cfg.MigrateOnStart is set. The caller owns the gateway.
func Open(ctx context.Context, log *logger.Logger, prefix string, cfg Config) (storage.Gateway, error) {
	switch cfg.Driver {
	case SQLite, "":
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return nil, fmt.Errorf("configuring sqlite support: %w", err)
		}
		log.InfoContext(ctx, "init", "service", "sqlite")

		if cfg.MigrateOnStart {
			if err := sqlitedb.Migrate(ctx, log.Logger, db, schema.MigrationsFS, schema.SQLiteDir); err != nil {
				db.Close()
				return nil, fmt.Errorf("migrating sqlite: %w", err)
			}
		}
		return sqlitegateway.New(log, db), nil

	case Postgres:
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		log.InfoContext(ctx, "init", "service", "postgres")

		if cfg.MigrateOnStart {
			if err := postgresdb.Migrate(ctx, log.Logger, pool, schema.MigrationsFS, schema.PostgresDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrating postgres: %w", err)
			}
		}
		return pgxgateway.New(log, pool), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
