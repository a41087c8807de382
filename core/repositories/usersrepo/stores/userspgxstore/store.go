// Package userspgxstore implements usersrepo.Storer for PostgreSQL.
package userspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/infrastructure/postgresdb"
)

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

func (s *Store) List(ctx context.Context) ([]usersrepo.User, error) {
	query := `SELECT id, name, email
		FROM users
		ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return users, nil
}

func (s *Store) Get(ctx context.Context, id int) (usersrepo.User, error) {
	query := `SELECT id, name, email
		FROM users
		WHERE id = @id`

	rows, err := s.db.Query(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}

func (s *Store) Create(ctx context.Context, nu usersrepo.NewUser) (usersrepo.User, error) {
	query := `INSERT INTO users (name, email)
		VALUES (@name, @email)
		RETURNING id, name, email`

	args := pgx.NamedArgs{
		"name":  nu.Name,
		"email": nu.Email,
	}

	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return user, nil
}

func (s *Store) Replace(ctx context.Context, id int, nu usersrepo.NewUser) error {
	query := `UPDATE users
		SET name = @name, email = @email
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":    id,
		"name":  nu.Name,
		"email": nu.Email,
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
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
