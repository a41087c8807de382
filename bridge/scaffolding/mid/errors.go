package mid

import (
	"context"
	"log/slog"
	"net/http"
	"path"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

const msgInternal = "Internal Server Error"

// Errors turns a failed response into the JSON error body clients see.
// Anything that is not an *errs.Error reaches the caller as a bare 500.
// Client faults are logged at warn, server faults at error.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.GetError(err)
			if appErr == nil {
				appErr = errs.Newf(errs.Internal, msgInternal)
			}

			status := appErr.HTTPStatus()
			level := slog.LevelWarn
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			log.Log(ctx, level, "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"code", appErr.Code.String(),
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				return errs.Newf(errs.Internal, msgInternal)
			}
			return appErr
		}
	}
}
