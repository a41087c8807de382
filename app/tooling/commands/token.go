package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/sdk/environment"
)

func newTokenCommand(prefix string) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with " + prefix + "_AUTH_SIGNING_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg mid.AuthConfig
			if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
				return fmt.Errorf("parsing auth config: %w", err)
			}
			if cfg.SigningKey == "" {
				return errors.New(prefix + "_AUTH_SIGNING_KEY is required to mint tokens")
			}

			token, err := mid.IssueToken(cfg, subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.MarkFlagRequired("sub")

	return cmd
}
