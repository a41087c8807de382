// Package commands implements the tooling subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// NewRootCommand returns the tooling command tree. prefix namespaces every
// environment variable the commands read, the same way the service does.
func NewRootCommand(log *logger.Logger, prefix string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tooling",
		Short: "Maintenance commands for the task management service",
		Long: `Maintenance commands for the task management service.

Configuration is read from the same environment variables as the service,
for example ` + prefix + `_DB_DRIVER, ` + prefix + `_SQLITE_PATH, ` + prefix + `_PG_DATABASE_URL,
` + prefix + `_AUTH_ISSUER, ` + prefix + `_AUTH_AUDIENCE and ` + prefix + `_AUTH_SIGNING_KEY.

EXAMPLES:
  tooling migrate                          # apply pending migrations
  tooling migrate --driver postgres        # apply them to PostgreSQL
  tooling token --sub 42 --ttl 1h          # mint a development token`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand(log, prefix))
	root.AddCommand(newTokenCommand(prefix))

	return root
}
