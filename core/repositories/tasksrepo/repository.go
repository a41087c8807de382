package tasksrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// Storer is implemented once per database driver. Every read joins the
// assigned user.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id int) (Task, error)
	Create(ctx context.Context, nt NewTask) (Task, error)
	Replace(ctx context.Context, id int, nt NewTask) error
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

// List returns every task ordered by id.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	tasks, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}
	return tasks, nil
}

func (r *Repository) Get(ctx context.Context, id int) (Task, error) {
	task, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository get: %w", err)
	}
	return task, nil
}

func (r *Repository) Create(ctx context.Context, nt NewTask) (Task, error) {
	task, err := r.storer.Create(ctx, nt)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.ID)
	return task, nil
}

// Replace overwrites every field of task id. It returns
// repositories.ErrNotFound, and writes nothing, when id does not exist.
func (r *Repository) Replace(ctx context.Context, id int, nt NewTask) (Task, error) {
	if err := r.storer.Replace(ctx, id, nt); err != nil {
		return Task{}, fmt.Errorf("task repository replace: %w", err)
	}

	task, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository replace: %w", err)
	}

	r.log.InfoContext(ctx, "task replaced", "task_id", id)
	return task, nil
}

// Delete removes task id and returns its state before removal.
func (r *Repository) Delete(ctx context.Context, id int) (Task, error) {
	task, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository delete: %w", err)
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return Task{}, fmt.Errorf("task repository delete: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", id)
	return task, nil
}
