package sqlitedb_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/infrastructure/sqlitedb"
	"github.com/jrazmi/taskmanagement/schema"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := sqlitedb.NewTestDB()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, sqlitedb.Migrate(ctx, quietLog(), db, schema.MigrationsFS, schema.SQLiteDir))
	require.NoError(t, sqlitedb.Migrate(ctx, quietLog(), db, schema.MigrationsFS, schema.SQLiteDir))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestMigrateDetectsEditedFile(t *testing.T) {
	db, err := sqlitedb.NewTestDB()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	applied := fstest.MapFS{"m/001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER);")}}
	require.NoError(t, sqlitedb.Migrate(ctx, quietLog(), db, applied, "m"))

	edited := fstest.MapFS{"m/001_a.sql": {Data: []byte("CREATE TABLE a (id INTEGER, name TEXT);")}}
	err = sqlitedb.Migrate(ctx, quietLog(), db, edited, "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := sqlitedb.NewTestDB()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, sqlitedb.Migrate(ctx, quietLog(), db, schema.MigrationsFS, schema.SQLiteDir))

	_, err = db.ExecContext(ctx, "INSERT INTO Tasks (Title, IsCompleted, AssignedUserId) VALUES ('orphan', 0, 42)")
	require.Error(t, err)
	assert.ErrorIs(t, sqlitedb.HandleSQLiteError(err), sqlitedb.ErrDBForeignKey)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := sqlitedb.Open(sqlitedb.Options{})
	assert.Error(t, err)
}
