package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/core/repositories"
	"github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"
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

// repository binds a task repository to the request's storage session.
func (b *bridge) repository(ctx context.Context) (storage.Session, *tasksrepo.Repository, error) {
	s, err := storage.GetSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, err := s.Tasks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s, tasksrepo.NewRepository(b.log, store), nil
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

	tasks, err := repo.List(ctx)
	if err != nil {
		return errs.New(errs.StorageFault, msgListFailed, err)
	}
	if tasks == nil {
		tasks = []tasksrepo.Task{}
	}

	return web.NewJSONResponse(tasks)
}

// httpUpsert creates the task when its id is 0 and replaces task id
// otherwise.
func (b *bridge) httpUpsert(ctx context.Context, r *http.Request) web.Encoder {
	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, msgSaveFailed, err)
	}

	if input.ID == 0 {
		return b.save(ctx, func(repo *tasksrepo.Repository) (tasksrepo.Task, error) {
			return repo.Create(ctx, input.toNewTask())
		})
	}

	return b.save(ctx, func(repo *tasksrepo.Repository) (tasksrepo.Task, error) {
		return repo.Replace(ctx, input.ID, input.toNewTask())
	})
}

// httpReplace replaces the task named by the path. The id in the body is
// ignored.
func (b *bridge) httpReplace(ctx context.Context, r *http.Request) web.Encoder {
	id, err := strconv.Atoi(web.Param(r, "id"))
	if err != nil {
		return errs.New(errs.InvalidArgument, msgInvalidID, err)
	}

	var input TaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, msgSaveFailed, err)
	}

	return b.save(ctx, func(repo *tasksrepo.Repository) (tasksrepo.Task, error) {
		return repo.Replace(ctx, id, input.toNewTask())
	})
}

// save runs op and commits the session.
func (b *bridge) save(ctx context.Context, op func(*tasksrepo.Repository) (tasksrepo.Task, error)) web.Encoder {
	s, repo, err := b.repository(ctx)
	if err != nil {
		return sessionFault(msgSaveFailed, err)
	}

	task, err := op(repo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, msgNotFound)
		}
		return errs.New(errs.StorageFault, msgSaveFailed, err)
	}

	if err := s.Commit(ctx); err != nil {
		return errs.New(errs.StorageFault, msgSaveFailed, err)
	}

	return web.NewJSONResponse(task)
}

// httpDelete removes the task named by the Id query parameter, matched
// case-insensitively. A missing Id is treated as 0.
func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := queryID(r)
	if err != nil {
		return errs.New(errs.InvalidArgument, msgInvalidID, err)
	}

	s, repo, err := b.repository(ctx)
	if err != nil {
		return sessionFault(msgDeleteFailed, err)
	}

	task, err := repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, msgNotFound)
		}
		return errs.New(errs.StorageFault, msgDeleteFailed, err)
	}

	if err := s.Commit(ctx); err != nil {
		return errs.New(errs.StorageFault, msgDeleteFailed, err)
	}

	return web.NewJSONResponse(task)
}

func queryID(r *http.Request) (int, error) {
	v := web.QueryParamFold(r, "id")
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
