// Package taskssqlitestore implements tasksrepo.Storer for SQLite.
package taskssqlitestore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/infrastructure/sqlitedb"
)

const selectTasks = `SELECT t.Id, t.Title, t.IsCompleted, t.AssignedUserId, u.Id, u.Name, u.Email
	FROM Tasks t
	LEFT JOIN Users u ON u.Id = t.AssignedUserId`

type Store struct {
	db sqlitedb.Querier
}

// NewStore returns a store that runs every query on db, usually the
// transaction of the current request.
func NewStore(db sqlitedb.Querier) *Store {
	return &Store{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (tasksrepo.Task, error) {
	var (
		task        tasksrepo.Task
		assignedID  sql.NullInt64
		userID      sql.NullInt64
		name, email sql.NullString
	)

	if err := row.Scan(&task.ID, &task.Title, &task.IsCompleted, &assignedID, &userID, &name, &email); err != nil {
		return tasksrepo.Task{}, err
	}

	if assignedID.Valid {
		id := int(assignedID.Int64)
		task.AssignedUserID = &id
	}
	if userID.Valid {
		task.User = &usersrepo.User{
			ID:    int(userID.Int64),
			Name:  name.String,
			Email: email.String,
		}
	}

	return task, nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectTasks+" ORDER BY t.Id")
	if err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}
	defer rows.Close()

	tasks := []tasksrepo.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, sqlitedb.HandleSQLiteError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}

	return tasks, nil
}

func (s *Store) Get(ctx context.Context, id int) (tasksrepo.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTasks+" WHERE t.Id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, sqlitedb.HandleSQLiteError(err)
	}

	return task, nil
}

// Create inserts the task and reads it back with its user joined.
func (s *Store) Create(ctx context.Context, nt tasksrepo.NewTask) (tasksrepo.Task, error) {
	query := `INSERT INTO Tasks (Title, IsCompleted, AssignedUserId) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, nullableString(nt.Title), nt.IsCompleted, nullableID(nt.AssignedUserID))
	if err != nil {
		return tasksrepo.Task{}, sqlitedb.HandleSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return tasksrepo.Task{}, sqlitedb.HandleSQLiteError(err)
	}

	return s.Get(ctx, int(id))
}

func (s *Store) Replace(ctx context.Context, id int, nt tasksrepo.NewTask) error {
	query := `UPDATE Tasks SET Title = ?, IsCompleted = ?, AssignedUserId = ? WHERE Id = ?`

	res, err := s.db.ExecContext(ctx, query, nullableString(nt.Title), nt.IsCompleted, nullableID(nt.AssignedUserID), id)
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	return checkAffected(res)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM Tasks WHERE Id = ?`, id)
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	return checkAffected(res)
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
