package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/app/tooling/commands"
	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/core/storage/drivers"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("TOOLTEST_AUTH_ISSUER", "https://issuer.example.com/")
	t.Setenv("TOOLTEST_AUTH_AUDIENCE", "tasks-api")
	t.Setenv("TOOLTEST_AUTH_SIGNING_KEY", "tooling-key")

	var out bytes.Buffer
	root := commands.NewRootCommand(logger.NewDiscard(), "TOOLTEST")
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--sub", "42", "--ttl", "5m"})
	require.NoError(t, root.Execute())

	auth, err := mid.NewAuthenticator(mid.AuthConfig{
		Issuer:     "https://issuer.example.com/",
		Audience:   "tasks-api",
		SigningKey: "tooling-key",
	})
	require.NoError(t, err)

	claims, err := auth.Validate(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenCommandRequiresSubject(t *testing.T) {
	root := commands.NewRootCommand(logger.NewDiscard(), "TOOLTEST")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token"})
	assert.Error(t, root.Execute())
}

func TestMigrateSQLite(t *testing.T) {
	t.Setenv("TOOLTEST_SQLITE_PATH", filepath.Join(t.TempDir(), "tasks.db"))

	cfg := drivers.Config{Driver: drivers.SQLite, MigrateOnStart: true}
	require.NoError(t, commands.Migrate(context.Background(), logger.NewDiscard(), "TOOLTEST", cfg))

	// A second run finds nothing to do.
	require.NoError(t, commands.Migrate(context.Background(), logger.NewDiscard(), "TOOLTEST", cfg))
}
