package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrazmi/taskmanagement/app/tooling/commands"
	"github.com/jrazmi/taskmanagement/sdk/environment"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

var appName = "TASKS"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "loading .env:", err)
	}

	log, err := logger.NewFromEnv(appName, logger.WithService("TOOLING"))
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand(log, appName).ExecuteContext(ctx); err != nil {
		log.ErrorContext(ctx, "tooling", "err", err)
		stop()
		os.Exit(1)
	}
}
