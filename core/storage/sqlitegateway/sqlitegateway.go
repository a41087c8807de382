// Package sqlitegateway implements storage.Gateway on a SQLite database.
package sqlitegateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo/stores/userssqlitestore"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/sqlitedb"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

var _ storage.Gateway = (*Gateway)(nil)

type Gateway struct {
	log *logger.Logger
	db  *sql.DB
}

// New returns a gateway that owns db. Close closes the database.
func New(log *logger.Logger, db *sql.DB) *Gateway {
	return &Gateway{
		log: log,
		db:  db,
	}
}

// Open returns a session whose transaction begins on first use. The pool
// defaults to one connection, so while a session's transaction is open
// every other session waits in begin for it to be released.
func (g *Gateway) Open(ctx context.Context) (storage.Session, error) {
	return &session{db: g.db}, nil
}

func (g *Gateway) StatusCheck(ctx context.Context) error {
	return sqlitedb.StatusCheck(ctx, g.db)
}

func (g *Gateway) Close() {
	if err := g.db.Close(); err != nil {
		g.log.Error("closing sqlite database", "error", err)
	}
}

type session struct {
	db    *sql.DB
	tx    *sql.Tx
	tasks *taskssqlitestore.Store
	users *userssqlitestore.Store
}

func (s *session) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", sqlitedb.HandleSQLiteError(err))
	}

	s.tx = tx
	s.tasks = taskssqlitestore.NewStore(tx)
	s.users = userssqlitestore.NewStore(tx)
	return nil
}

func (s *session) Tasks(ctx context.Context) (tasksrepo.Storer, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	return s.tasks, nil
}

func (s *session) Users(ctx context.Context) (usersrepo.Storer, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	return s.users, nil
}

// Commit is a no-op for a session that never began its transaction.
func (s *session) Commit(context.Context) error {
	if s.tx == nil {
		return nil
	}
	return sqlitedb.HandleSQLiteError(s.tx.Commit())
}

// Release rolls back. After a commit the rollback reports sql.ErrTxDone,
// which is not an error here.
func (s *session) Release(context.Context) error {
	if s.tx == nil {
		return nil
	}
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
