package pgxgateway_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/core/storage/pgxgateway"
	"github.com/jrazmi/taskmanagement/infrastructure/postgresdb"
	"github.com/jrazmi/taskmanagement/schema"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// newGateway connects to TEST_PG_DATABASE_URL. Every test runs in a session
// that is never committed, so the database is left untouched.
func newGateway(t *testing.T) *pgxgateway.Gateway {
	t.Helper()

	url := os.Getenv("TEST_PG_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_PG_DATABASE_URL not set")
	}

	log := logger.NewDiscard()
	pool, err := postgresdb.NewTestDB(url, postgresdb.WithLogger(log.Logger))
	require.NoError(t, err)

	require.NoError(t, postgresdb.Migrate(context.Background(), log.Logger, pool, schema.MigrationsFS, schema.PostgresDir))

	gw := pgxgateway.New(log, pool)
	t.Cleanup(gw.Close)
	return gw
}

func taskStore(t *testing.T, s storage.Session) tasksrepo.Storer {
	t.Helper()
	store, err := s.Tasks(context.Background())
	require.NoError(t, err)
	return store
}

func userStore(t *testing.T, s storage.Session) usersrepo.Storer {
	t.Helper()
	store, err := s.Users(context.Background())
	require.NoError(t, err)
	return store
}

func title(v string) *string { return &v }

func TestTaskLifecycle(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	s, err := gw.Open(ctx)
	require.NoError(t, err)
	defer s.Release(ctx)

	user, err := userStore(t, s).Create(ctx, usersrepo.NewUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	task, err := taskStore(t, s).Create(ctx, tasksrepo.NewTask{Title: title("Write report"), AssignedUserID: &user.ID})
	require.NoError(t, err)
	require.NotNil(t, task.User)
	assert.Equal(t, user, *task.User)

	require.NoError(t, taskStore(t, s).Replace(ctx, task.ID, tasksrepo.NewTask{Title: title("Ship it"), IsCompleted: true}))

	got, err := taskStore(t, s).Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, tasksrepo.Task{ID: task.ID, Title: "Ship it", IsCompleted: true}, got)

	require.NoError(t, taskStore(t, s).Delete(ctx, task.ID))
	_, err = taskStore(t, s).Get(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestReplaceMissingRow(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	s, err := gw.Open(ctx)
	require.NoError(t, err)
	defer s.Release(ctx)

	assert.ErrorIs(t, userStore(t, s).Replace(ctx, -1, usersrepo.NewUser{Name: "ghost"}), repositories.ErrNotFound)
	assert.ErrorIs(t, taskStore(t, s).Delete(ctx, -1), repositories.ErrNotFound)
}

func TestAssignMissingUser(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	s, err := gw.Open(ctx)
	require.NoError(t, err)
	defer s.Release(ctx)

	missing := -1
	_, err = taskStore(t, s).Create(ctx, tasksrepo.NewTask{Title: title("orphan"), AssignedUserID: &missing})
	assert.ErrorIs(t, err, postgresdb.ErrDBForeignKey)
}

func TestMissingTitleRejected(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	s, err := gw.Open(ctx)
	require.NoError(t, err)
	defer s.Release(ctx)

	_, err = taskStore(t, s).Create(ctx, tasksrepo.NewTask{})
	assert.ErrorIs(t, err, postgresdb.ErrDBNotNull)
}

func TestLargeIDsMatchNothing(t *testing.T) {
	gw := newGateway(t)
	ctx := context.Background()

	s, err := gw.Open(ctx)
	require.NoError(t, err)
	defer s.Release(ctx)

	large := 1 << 40
	assert.ErrorIs(t, taskStore(t, s).Replace(ctx, large, tasksrepo.NewTask{Title: title("ghost")}), repositories.ErrNotFound)
	assert.ErrorIs(t, userStore(t, s).Delete(ctx, large), repositories.ErrNotFound)

	_, err = taskStore(t, s).Get(ctx, large)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
