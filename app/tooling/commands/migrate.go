package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrazmi/taskmanagement/core/storage/drivers"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

func newMigrateCommand(log *logger.Logger, prefix string) *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := drivers.LoadConfig(prefix)
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Driver = driver
			}
			cfg.MigrateOnStart = true

			return Migrate(cmd.Context(), log, prefix, cfg)
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "database driver, sqlite or postgres (overrides "+prefix+"_DB_DRIVER)")

	return cmd
}

// Migrate opens the database described by cfg, which applies every pending
// migration, and closes it again.
func Migrate(ctx context.Context, log *logger.Logger, prefix string, cfg drivers.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "driver", cfg.Driver)

	gw, err := drivers.Open(ctx, log, prefix, cfg)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	gw.Close()

	log.InfoContext(ctx, "migrations completed successfully", "driver", cfg.Driver)
	return nil
}
