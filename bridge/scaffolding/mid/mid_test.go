package mid_test

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jrazmi/taskmanagement/bridge/scaffolding/errs"
	"github.com/jrazmi/taskmanagement/bridge/scaffolding/mid"
	"github.com/jrazmi/taskmanagement/infrastructure/web"
	"github.com/jrazmi/taskmanagement/sdk/logger"
)

type plainError struct{ error }

func (plainError) Encode() ([]byte, string, error) { return nil, "", nil }

func serve(handler web.HandlerFunc) *httptest.ResponseRecorder {
	log := logger.NewDiscard()
	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()))
	wh.GET("/", handler)

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestPanicsBecomeInternalErrors(t *testing.T) {
	rec := serve(func(ctx context.Context, r *http.Request) web.Encoder {
		panic("kaboom")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
}

func TestUnknownErrorsAreHidden(t *testing.T) {
	rec := serve(func(ctx context.Context, r *http.Request) web.Encoder {
		return plainError{errors.New("secret connection string")}
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestAppErrorsPassThrough(t *testing.T) {
	rec := serve(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.StorageFault, "Error retrieving tasks", errors.New("database is locked"))
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Error retrieving tasks","error":"database is locked"}`, rec.Body.String())
}

func TestMetricsCountErrorsByStatus(t *testing.T) {
	count := func(status string) int64 {
		byStatus, ok := expvar.Get("errors_by_status").(*expvar.Map)
		if !ok {
			return 0
		}
		v, ok := byStatus.Get(status).(*expvar.Int)
		if !ok {
			return 0
		}
		return v.Value()
	}

	before := count("404")

	serve(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "Task not found")
	})
	serve(func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	assert.Equal(t, before+1, count("404"))
}
