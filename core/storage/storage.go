// Package storage defines the per request unit of work the resource
// handlers read and write through.
package storage

import (
	"context"
	"errors"

	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
)

// ErrNoSession is returned by GetSession when the context carries no session.
var ErrNoSession = errors.New("storage session not found in context")

// Session is one database transaction. The transaction begins on the first
// call to Tasks or Users, so a session that never touches a store holds no
// connection. Every store it hands out runs on that transaction. Release
// must always be called; it rolls back unless Commit succeeded first.
type Session interface {
	Tasks(ctx context.Context) (tasksrepo.Storer, error)
	Users(ctx context.Context) (usersrepo.Storer, error)
	Commit(ctx context.Context) error
	Release(ctx context.Context) error
}

// Gateway opens sessions against one database. Open does not touch the
// database.
type Gateway interface {
	Open(ctx context.Context) (Session, error)
	StatusCheck(ctx context.Context) error
	Close()
}

type ctxKey int

const sessionKey ctxKey = 1

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession returns the session stored by WithSession.
func GetSession(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
