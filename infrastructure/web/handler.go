package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jrazmi/taskmanagement/sdk/environment"
)

// WebHandler is the entrypoint into the application. It owns the mux, applies
// the global middleware chain and encodes every handler result.
type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	corsOrigins    []string
	defaultHeaders map[string]string

	globalMiddleware []Middleware
	preflight        map[string]bool
}

// HandlerOptions is the exportable configuration struct
type HandlerOptions struct {
	CORSOrigins    []string `env:"CORS_ORIGINS" default:"*" separator:","`
	DefaultHeaders map[string]string
}

// HandlerOption configures a WebHandler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	corsOrigins      []string
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithCORS sets CORS origins. An empty list disables CORS handling.
func WithCORS(origins []string) HandlerOption {
	return func(o *handlerOptions) {
		o.corsOrigins = origins
	}
}

// WithDefaultHeaders sets headers written on every response.
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware applied to every route, in order.
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// LoadHandlerOptions reads the prefixed handler environment variables.
func LoadHandlerOptions(prefix string) (HandlerOptions, error) {
	var cfg HandlerOptions
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return HandlerOptions{}, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return cfg, nil
}

// NewWebHandlerFromEnv creates a WebHandler from prefixed environment variables.
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	cfg, err := LoadHandlerOptions(prefix)
	if err != nil {
		return nil, err
	}
	return NewWebHandler(cfg, opts...), nil
}

// NewWebHandler creates a WebHandler with the given config and options.
func NewWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	o := &handlerOptions{
		corsOrigins:    cfg.CORSOrigins,
		defaultHeaders: make(map[string]string),
	}
	for k, v := range cfg.DefaultHeaders {
		o.defaultHeaders[k] = v
	}
	for _, opt := range opts {
		opt(o)
	}

	wh := &WebHandler{
		mux:              http.NewServeMux(),
		log:              o.log,
		telemetry:        o.telemetry,
		corsOrigins:      o.corsOrigins,
		defaultHeaders:   o.defaultHeaders,
		globalMiddleware: o.globalMiddleware,
		preflight:        make(map[string]bool),
	}

	// CORS runs before every other middleware.
	if len(wh.corsOrigins) > 0 {
		wh.globalMiddleware = append([]Middleware{wh.corsMiddleware()}, wh.globalMiddleware...)
	}

	return wh
}

// Handle registers handler for method and path behind the global middleware
// followed by the route middleware.
func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	all := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	all = append(all, wh.globalMiddleware...)
	all = append(all, middleware...)

	wh.mux.HandleFunc(fmt.Sprintf("%s %s", strings.ToUpper(method), path), wh.serve(wrapMiddleware(all, handler)))

	if len(wh.corsOrigins) > 0 && !wh.preflight[path] {
		wh.preflight[path] = true
		wh.mux.HandleFunc(fmt.Sprintf("OPTIONS %s", path), wh.serve(wh.corsMiddleware()(nil)))
	}
}

// GET registers a GET route.
func (wh *WebHandler) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodGet, path, handler, middleware...)
}

// POST registers a POST route.
func (wh *WebHandler) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPost, path, handler, middleware...)
}

// PUT registers a PUT route.
func (wh *WebHandler) PUT(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPut, path, handler, middleware...)
}

// DELETE registers a DELETE route.
func (wh *WebHandler) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodDelete, path, handler, middleware...)
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

// ServeHTTP implements the http.Handler interface.
func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wh.mux.ServeHTTP(w, r)
}

func (wh *WebHandler) serve(handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if wh.telemetry != nil {
			ctx = wh.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)
		r = r.WithContext(ctx)

		for k, v := range wh.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := handler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "web-respond", "err", err)
		}
	}
}
