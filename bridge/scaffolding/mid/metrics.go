package mid

import (
	"context"
	"net/http"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/metrics"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
)

// goroutineSample is how many requests pass between goroutine samples.
const goroutineSample = 1000

// Metrics counts requests and failed responses by status code.
func Metrics() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)
			resp := next(ctx, r)

			if n := metrics.AddRequests(ctx); n%goroutineSample == 0 {
				metrics.AddGoroutines(ctx)
			}

			if status := web.StatusCode(resp); status >= http.StatusBadRequest {
				metrics.AddErrors(ctx, status)
			}

			return resp
		}
	}
}
