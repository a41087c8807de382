package usersrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

type memStore struct {
	users map[int]usersrepo.User
}

func (m *memStore) List(ctx context.Context) ([]usersrepo.User, error) {
	out := []usersrepo.User{}
	for id := 1; id <= len(m.users)+1; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id int) (usersrepo.User, error) {
	u, ok := m.users[id]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memStore) Create(ctx context.Context, nu usersrepo.NewUser) (usersrepo.User, error) {
	u := usersrepo.User{ID: len(m.users) + 1, Name: nu.Name, Email: nu.Email}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) Replace(ctx context.Context, id int, nu usersrepo.NewUser) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	m.users[id] = usersrepo.User{ID: id, Name: nu.Name, Email: nu.Email}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func TestUserLifecycle(t *testing.T) {
	repo := usersrepo.NewRepository(logger.NewDiscard(), &memStore{users: map[int]usersrepo.User{}})
	ctx := context.Background()

	user, err := repo.Create(ctx, usersrepo.NewUser{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	replaced, err := repo.Replace(ctx, user.ID, usersrepo.NewUser{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, usersrepo.User{ID: 1, Name: "Ada Lovelace"}, replaced)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, replaced, deleted)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMissingUser(t *testing.T) {
	repo := usersrepo.NewRepository(logger.NewDiscard(), &memStore{users: map[int]usersrepo.User{}})
	ctx := context.Background()

	_, err := repo.Replace(ctx, 7, usersrepo.NewUser{Name: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.Delete(ctx, 7)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.Get(ctx, 7)
	assert.EqualError(t, err, "user repository get: record not found")
}
