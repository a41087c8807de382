package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/taskmanagement/app/taskmanagement/api"
	"github.com/jrazmi/taskmanagement/app/taskmanagement/config"
	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/core/storage/drivers"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/environment"
	"github.com/jrazmi/taskmanagement/sdk/logger"
	"github.com/jrazmi/taskmanagement/sdk/telemetry"
)

var build = "develop"
var appName = "TASKS"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}

	tel := telemetry.NewTelemetry()
	traceIDFn := func(ctx context.Context) string {
		if id := tel.GetTraceID(ctx); id != telemetry.NoTraceID {
			return id
		}
		return ""
	}

	log, err := logger.NewFromEnv(appName, logger.WithService(appName), logger.WithTraceIDFn(traceIDFn))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: CONFIGURATION :*:
	opts, authCfg, err := config.Load(appName)
	if err != nil {
		return err
	}

	auth, err := mid.NewAuthenticator(authCfg)
	if err != nil {
		return fmt.Errorf("configuring authentication: %w", err)
	}

	handlerCfg, err := web.LoadHandlerOptions(appName)
	if err != nil {
		return err
	}

	serverCfg, err := web.LoadServerConfig(appName)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	// :*: STORAGE :*:
	dbCfg, err := drivers.LoadConfig(appName)
	if err != nil {
		return err
	}

	gw, err := drivers.Open(ctx, log, appName, dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		gw.Close()
	}()

	// :*: HTTP :*:
	handler, err := api.NewWebHandler(config.TaskManagement{
		Build:       build,
		Logger:      log,
		Telemetry:   tel,
		Gateway:     gw,
		Auth:        auth,
		Handler:     handlerCfg,
		DocsEnabled: opts.DocsEnabled,
	})
	if err != nil {
		return fmt.Errorf("building handler: %w", err)
	}

	server := web.NewWebServer(serverCfg,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr, "driver", dbCfg.Driver)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
