// Package api builds the HTTP handler of the task management service.
package api

import (
	"context"
	"expvar"
	"net/http"

	"github.com/jrazmi/taskmanagement/app/taskmanagement/config"
	"github.com/jrazmi/taskmanagement/app/taskmanagement/docs"
	"github.com/jrazmi/taskmanagement/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskmanagement/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
)

// NewWebHandler registers every route. Routes under config.ApiRoute require
// a bearer token and run inside a storage session; /healthz, /debug/vars and
// the docs do not.
func NewWebHandler(cfg config.TaskManagement) (*web.WebHandler, error) {
	wh := web.NewWebHandler(cfg.Handler,
		web.WithLogging(cfg.Logger.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	api := wh.Group(config.ApiRoute, mid.Authenticate(cfg.Auth), mid.Session(cfg.Logger, cfg.Gateway))
	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{Log: cfg.Logger})
	usersrepobridge.AddHttpRoutes(api, usersrepobridge.Config{Log: cfg.Logger})

	wh.GET("/healthz", health(cfg.Gateway))
	wh.HandleRaw("GET /debug/vars", expvar.Handler())

	if cfg.DocsEnabled {
		if err := wh.FileServer(docs.Files, ".", config.DocsRoute); err != nil {
			return nil, err
		}
	}

	return wh, nil
}

func health(gw storage.Gateway) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if err := gw.StatusCheck(ctx); err != nil {
			return errs.New(errs.Internal, "Storage unavailable", err)
		}
		return web.NewJSONResponse(map[string]string{"status": "ok"})
	}
}
