package usersrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/taskmanagement/sdk/logger"
)

type Storer interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int) (User, error)
	Create(ctx context.Context, nu NewUser) (User, error)
	Replace(ctx context.Context, id int, nu NewUser) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns every user ordered by id.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	users, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list: %w", err)
	}
	return users, nil
}

func (r *Repository) Get(ctx context.Context, id int) (User, error) {
	user, err := r.storer.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user repository get: %w", err)
	}
	return user, nil
}

func (r *Repository) Create(ctx context.Context, nu NewUser) (User, error) {
	user, err := r.storer.Create(ctx, nu)
	if err != nil {
		return User{}, fmt.Errorf("user repository create: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// Replace overwrites every field of user id. It returns
// repositories.ErrNotFound, and writes nothing, when id does not exist.
func (r *Repository) Replace(ctx context.Context, id int, nu NewUser) (User, error) {
	if err := r.storer.Replace(ctx, id, nu); err != nil {
		return User{}, fmt.Errorf("user repository replace: %w", err)
	}

	user, err := r.storer.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user repository replace: %w", err)
	}

	r.log.InfoContext(ctx, "user replaced", "user_id", id)
	return user, nil
}

// Delete removes user id and returns its state before removal.
func (r *Repository) Delete(ctx context.Context, id int) (User, error) {
	user, err := r.storer.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user repository delete: %w", err)
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return User{}, fmt.Errorf("user repository delete: %w", err)
	}

	r.log.InfoContext(ctx, "user deleted", "user_id", id)
	return user, nil
}
