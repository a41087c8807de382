// Package taskspgxstore implements tasksrepo.Storer for PostgreSQL.
package taskspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/infrastructure/postgresdb"
)

const selectTasks = `SELECT t.id, t.title, t.is_completed, t.assigned_user_id, u.id, u.name, u.email
	FROM tasks t
	LEFT JOIN users u ON u.id = t.assigned_user_id`

type Store struct {
	db postgresdb.Querier
}

// NewStore returns a store that runs every query on db, usually the
// transaction of the current request.
func NewStore(db postgresdb.Querier) *Store {
	return &Store{
		db: db,
	}
}

// scanTask reads one row of selectTasks. The user columns are all NULL for
// an unassigned task.
func scanTask(row pgx.CollectableRow) (tasksrepo.Task, error) {
	var (
		task   tasksrepo.Task
		userID *int
		name   *string
		email  *string
	)

	if err := row.Scan(&task.ID, &task.Title, &task.IsCompleted, &task.AssignedUserID, &userID, &name, &email); err != nil {
		return tasksrepo.Task{}, err
	}

	if userID != nil {
		task.User = &usersrepo.User{ID: *userID}
		if name != nil {
			task.User.Name = *name
		}
		if email != nil {
			task.User.Email = *email
		}
	}

	return task, nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	rows, err := s.db.Query(ctx, selectTasks+" ORDER BY t.id")
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, scanTask)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

func (s *Store) Get(ctx context.Context, id int) (tasksrepo.Task, error) {
	rows, err := s.db.Query(ctx, selectTasks+" WHERE t.id = @id", pgx.NamedArgs{"id": id})
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, scanTask)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

// Create inserts the task and reads it back with its user joined.
func (s *Store) Create(ctx context.Context, nt tasksrepo.NewTask) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (title, is_completed, assigned_user_id)
		VALUES (@title, @is_completed, @assigned_user_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"title":            nt.Title,
		"is_completed":     nt.IsCompleted,
		"assigned_user_id": nt.AssignedUserID,
	}

	var id int
	if err := s.db.QueryRow(ctx, query, args).Scan(&id); err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return s.Get(ctx, id)
}

func (s *Store) Replace(ctx context.Context, id int, nt tasksrepo.NewTask) error {
	query := `UPDATE tasks
		SET title = @title, is_completed = @is_completed, assigned_user_id = @assigned_user_id
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":               id,
		"title":            nt.Title,
		"is_completed":     nt.IsCompleted,
		"assigned_user_id": nt.AssignedUserID,
	}

	tag, err := s.db.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
