package tasksrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// memStore is an in-memory Storer.
type memStore struct {
	nextID  int
	tasks   map[int]tasksrepo.Task
	deletes int
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, tasks: map[int]tasksrepo.Task{}}
}

var errBoom = errors.New("boom")

func title(v string) *string { return &v }

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (m *memStore) List(ctx context.Context) ([]tasksrepo.Task, error) {
	if m.failOn == "list" {
		return nil, errBoom
	}
	out := make([]tasksrepo.Task, 0, len(m.tasks))
	for id := 1; id < m.nextID; id++ {
		if t, ok := m.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id int) (tasksrepo.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}
	return t, nil
}

func (m *memStore) Create(ctx context.Context, nt tasksrepo.NewTask) (tasksrepo.Task, error) {
	if m.failOn == "create" {
		return tasksrepo.Task{}, errBoom
	}
	t := tasksrepo.Task{ID: m.nextID, Title: deref(nt.Title), IsCompleted: nt.IsCompleted, AssignedUserID: nt.AssignedUserID}
	m.tasks[t.ID] = t
	m.nextID++
	return t, nil
}

func (m *memStore) Replace(ctx context.Context, id int, nt tasksrepo.NewTask) error {
	if _, ok := m.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	m.tasks[id] = tasksrepo.Task{ID: id, Title: deref(nt.Title), IsCompleted: nt.IsCompleted, AssignedUserID: nt.AssignedUserID}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int) error {
	if m.failOn == "delete" {
		return errBoom
	}
	if _, ok := m.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.tasks, id)
	m.deletes++
	return nil
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	repo := tasksrepo.NewRepository(logger.NewDiscard(), newMemStore())
	ctx := context.Background()

	first, err := repo.Create(ctx, tasksrepo.NewTask{Title: title("one")})
	require.NoError(t, err)
	second, err := repo.Create(ctx, tasksrepo.NewTask{Title: title("two")})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReplace(t *testing.T) {
	repo := tasksrepo.NewRepository(logger.NewDiscard(), newMemStore())
	ctx := context.Background()

	task, err := repo.Create(ctx, tasksrepo.NewTask{Title: title("draft")})
	require.NoError(t, err)

	replaced, err := repo.Replace(ctx, task.ID, tasksrepo.NewTask{Title: title("final"), IsCompleted: true})
	require.NoError(t, err)
	assert.Equal(t, tasksrepo.Task{ID: task.ID, Title: "final", IsCompleted: true}, replaced)

	_, err = repo.Replace(ctx, 999, tasksrepo.NewTask{Title: title("ghost")})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDeleteReturnsPriorState(t *testing.T) {
	store := newMemStore()
	repo := tasksrepo.NewRepository(logger.NewDiscard(), store)
	ctx := context.Background()

	task, err := repo.Create(ctx, tasksrepo.NewTask{Title: title("Write report")})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, deleted)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteMissingSkipsStore(t *testing.T) {
	store := newMemStore()
	repo := tasksrepo.NewRepository(logger.NewDiscard(), store)

	_, err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Zero(t, store.deletes)
}

func TestErrorsAreWrapped(t *testing.T) {
	store := newMemStore()
	repo := tasksrepo.NewRepository(logger.NewDiscard(), store)
	ctx := context.Background()

	store.failOn = "list"
	_, err := repo.List(ctx)
	require.ErrorIs(t, err, errBoom)
	assert.EqualError(t, err, "task repository list: boom")

	store.failOn = "create"
	_, err = repo.Create(ctx, tasksrepo.NewTask{Title: title("x")})
	assert.EqualError(t, err, "task repository create: boom")
}
