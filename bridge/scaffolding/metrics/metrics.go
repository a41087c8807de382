// Package metrics publishes process counters through expvar.
package metrics

import (
	"context"
	"expvar"
	"runtime"
	"strconv"
)

// These counters are served at /debug/vars.
var m *metrics

type metrics struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	byStatus   *expvar.Map
	panics     *expvar.Int
}

func init() {
	m = &metrics{
		goroutines: expvar.NewInt("goroutines"),
		requests:   expvar.NewInt("requests"),
		errors:     expvar.NewInt("errors"),
		byStatus:   expvar.NewMap("errors_by_status"),
		panics:     expvar.NewInt("panics"),
	}
}

type ctxKey int

const key ctxKey = 1

// Set stores the counters in the context.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, m)
}

func get(ctx context.Context) *metrics {
	v, ok := ctx.Value(key).(*metrics)
	if !ok {
		return nil
	}
	return v
}

// AddGoroutines samples the current goroutine count.
func AddGoroutines(ctx context.Context) int64 {
	if v := get(ctx); v != nil {
		g := int64(runtime.NumGoroutine())
		v.goroutines.Set(g)
		return g
	}
	return 0
}

// AddRequests increments the request count and returns the new value.
func AddRequests(ctx context.Context) int64 {
	if v := get(ctx); v != nil {
		v.requests.Add(1)
		return v.requests.Value()
	}
	return 0
}

// AddErrors counts one failed response with the given status and returns
// the new total.
func AddErrors(ctx context.Context, status int) int64 {
	if v := get(ctx); v != nil {
		v.byStatus.Add(strconv.Itoa(status), 1)
		v.errors.Add(1)
		return v.errors.Value()
	}
	return 0
}

// AddPanics increments the panic count and returns the new value.
func AddPanics(ctx context.Context) int64 {
	if v := get(ctx); v != nil {
		v.panics.Add(1)
		return v.panics.Value()
	}
	return 0
}
