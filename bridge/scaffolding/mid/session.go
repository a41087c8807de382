package mid

import (
	"context"
	"net/http"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

// Session attaches a storage session to the request and releases it once
// the handler returns. The session's transaction begins when the handler
// first asks for a store, after the body has been read. Handlers that write
// call Commit themselves; everything else is rolled back.
func Session(log *logger.Logger, gw storage.Gateway) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			s, err := gw.Open(ctx)
			if err != nil {
				return errs.New(errs.StorageFault, "Error opening storage session", err)
			}

			defer func() {
				if err := s.Release(context.WithoutCancel(ctx)); err != nil {
					log.ErrorContext(ctx, "releasing storage session", "err", err)
				}
			}()

			return next(storage.WithSession(ctx, s), r)
		}
	}
}
