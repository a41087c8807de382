package usersrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/usersrepo"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

type bridge struct {
	log *logger.Logger
}

func newBridge(log *logger.Logger) *bridge {
	return &bridge{
		log: log,
	}
}

func (b *bridge) repository(ctx context.Context) (storage.Session, *usersrepo.Repository, error) {
	s, err := storage.GetSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, err := s.Users(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s, usersrepo.NewRepository(b.log, store), nil
}

// sessionFault reports a failure to reach the request's storage session. A
// session that fails to begin is a storage fault; a missing one is a wiring
// bug.
func sessionFault(msg string, err error) *errs.Error {
	if errors.Is(err, storage.ErrNoSession) {
		return errs.New(errs.Internal, msg, err)
	}
	return errs.New(errs.StorageFault, msg, err)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	_, repo, err := b.repository(ctx)
	if err != nil {
		return sessionFault(msgListFailed, err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		return errs.New(errs.StorageFault, msgListFailed, err)
	}
	if users == nil {
		users = []usersrepo.User{}
	}

	return web.NewJSONResponse(users)
}

func (b *bridge) httpUpsert(ctx context.Context, r *http.Request) web.Encoder {
	var input UserInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, msgSaveFailed, err)
	}

	if input.ID == 0 {
		return b.save(ctx, func(repo *usersrepo.Repository) (usersrepo.User, error) {
			return repo.Create(ctx, input.toNewUser())
		})
	}

	return b.save(ctx, func(repo *usersrepo.Repository) (usersrepo.User, error) {
		return repo.Replace(ctx, input.ID, input.toNewUser())
	})
}

func (b *bridge) httpReplace(ctx context.Context, r *http.Request) web.Encoder {
	id, err := strconv.Atoi(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, msgInvalidID, err)
	}

	var input UserInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, msgSaveFailed, err)
	}

	return b.save(ctx, func(repo *usersrepo.Repository) (usersrepo.User, error) {
		return repo.Replace(ctx, id, input.toNewUser())
	})
}

func (b *bridge) save(ctx context.Context, op func(*usersrepo.Repository) (usersrepo.User, error)) web.Encoder {
	s, repo, err := b.repository(ctx)
	if err != nil {
		return sessionFault(msgSaveFailed, err)
	}

	user, err := op(repo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, msgNotFound)
		}
		return errs.New(errs.StorageFault, msgSaveFailed, err)
	}

	if err := s.Commit(ctx); err != nil {
		return errs.New(errs.StorageFault, msgSaveFailed, err)
	}

	return web.NewJSONResponse(user)
}

// httpDelete removes the user named by the Id query parameter. Deleting a
// user that still has tasks assigned fails on the foreign key.
func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := queryID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, msgInvalidID, err)
	}

	s, repo, err := b.repository(ctx)
	if err != nil {
		return sessionFault(msgDeleteFailed, err)
	}

	user, err := repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, msgDeleteNotFound)
		}
		return errs.New(errs.StorageFault, msgDeleteFailed, err)
	}

	if err := s.Commit(ctx); err != nil {
		return errs.New(errs.StorageFault, msgDeleteFailed, err)
	}

	return web.NewJSONResponse(user)
}

func queryID(r *http.Request) (int, error) {
	v := web.QueryParamFold(r, "id")
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
