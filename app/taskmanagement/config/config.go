package config

import (
	"fmt"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/core/storage"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/environment"
	"github.com/jrazmi/taskmanagement/sdk/logger"
	"github.com/jrazmi/taskmanagement/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute  = "/api"
	DocsRoute = "/swagger/"
)

// Options is the part of the configuration read straight from the
// environment.
type Options struct {
	DocsEnabled bool `env:"DOCS_ENABLED" default:"false"`
}

// Load reads the prefixed application options and the auth settings.
func Load(prefix string) (Options, mid.AuthConfig, error) {
	var opts Options
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return Options{}, mid.AuthConfig{}, fmt.Errorf("parsing app config: %w", err)
	}

	var auth mid.AuthConfig
	if err := environment.ParseEnvTags(prefix, &auth); err != nil {
		return Options{}, mid.AuthConfig{}, fmt.Errorf("parsing auth config: %w", err)
	}

	return opts, auth, nil
}

// TaskManagement is everything the HTTP handler is built from.
type TaskManagement struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry

	Gateway storage.Gateway
	Auth    *mid.Authenticator

	Handler     web.HandlerOptions
	DocsEnabled bool
}
