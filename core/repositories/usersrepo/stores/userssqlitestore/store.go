// Package userssqlitestore implements usersrepo.Storer for SQLite.
package userssqlitestore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/infrastructure/sqlitedb"
)

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

func (s *Store) List(ctx context.Context) ([]usersrepo.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT Id, Name, Email FROM Users ORDER BY Id`)
	if err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}
	defer rows.Close()

	users := []usersrepo.User{}
	for rows.Next() {
		var u usersrepo.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, sqlitedb.HandleSQLiteError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlitedb.HandleSQLiteError(err)
	}

	return users, nil
}

func (s *Store) Get(ctx context.Context, id int) (usersrepo.User, error) {
	var u usersrepo.User
	err := s.db.QueryRowContext(ctx, `SELECT Id, Name, Email FROM Users WHERE Id = ?`, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, sqlitedb.HandleSQLiteError(err)
	}

	return u, nil
}

func (s *Store) Create(ctx context.Context, nu usersrepo.NewUser) (usersrepo.User, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO Users (Name, Email) VALUES (?, ?)`, nu.Name, nu.Email)
	if err != nil {
		return usersrepo.User{}, sqlitedb.HandleSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return usersrepo.User{}, sqlitedb.HandleSQLiteError(err)
	}

	return usersrepo.User{ID: int(id), Name: nu.Name, Email: nu.Email}, nil
}

func (s *Store) Replace(ctx context.Context, id int, nu usersrepo.NewUser) error {
	res, err := s.db.ExecContext(ctx, `UPDATE Users SET Name = ?, Email = ? WHERE Id = ?`, nu.Name, nu.Email, id)
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	return checkAffected(res)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM Users WHERE Id = ?`, id)
	if err != nil {
		return sqlitedb.HandleSQLiteError(err)
	}
	return checkAffected(res)
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
