// Package pgxgateway implements storage.Gateway on a pgx connection pool.
package pgxgateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/postgresdb"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

var _ storage.Gateway = (*Gateway)(nil)

type Gateway struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// New returns a gateway that owns pool. Close closes the pool.
func New(log *logger.Logger, pool *postgresdb.Pool) *Gateway {
	return &Gateway{
		log:  log,
		pool: pool,
	}
}

// Open returns a session whose transaction begins on a pooled connection
// at first use.
func (g *Gateway) Open(ctx context.Context) (storage.Session, error) {
	return &session{pool: g.pool}, nil
}

func (g *Gateway) StatusCheck(ctx context.Context) error {
	return postgresdb.StatusCheck(ctx, g.pool)
}

func (g *Gateway) Close() {
	g.log.Info("closing postgres pool", "total_conns", g.pool.Stat().TotalConns())
	g.pool.Close()
}

type session struct {
	pool      *postgresdb.Pool
	tx        pgx.Tx
	tasks     *taskspgxstore.Store
	users     *userspgxstore.Store
	committed bool
}

func (s *session) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", postgresdb.HandlePgError(err))
	}

	s.tx = tx
	s.tasks = taskspgxstore.NewStore(tx)
	s.users = userspgxstore.NewStore(tx)
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

func (s *session) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	if err := s.tx.Commit(ctx); err != nil {
		return postgresdb.HandlePgError(err)
	}
	s.committed = true
	return nil
}

func (s *session) Release(ctx context.Context) error {
	if s.tx == nil || s.committed {
		return nil
	}
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
