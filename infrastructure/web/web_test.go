package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskmanagement/infrastructure/web"
)

type payload struct {
	Name string `json:"name"`
}

func TestHandleEncodesJSON(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{})
	wh.GET("/api/thing", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{Name: web.QueryParamFold(r, "Name")})
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thing?name=widget", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"widget"}`, rec.Body.String())
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mark("global")))
	group := wh.Group("/api", mark("group"))
	group.POST("/thing", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		return web.NewJSONResponseWithStatus(payload{}, http.StatusCreated)
	}, mark("route"))

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/thing", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"global", "group", "route", "handler"}, order)
}

func TestCORSPreflight(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{CORSOrigins: []string{"http://app.test"}})
	wh.GET("/api/thing", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(payload{})
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/thing", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestQueryParamFold(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "Id=1", want: "1"},
		{query: "ID=7", want: "7"},
		{query: "Id=1&id=2", want: "1"},
		{query: "id=2&Id=1", want: "2"},
		{query: "other=3&iD=4", want: "4"},
		{query: "%zz=9&id=5", want: "5"},
		{query: "i%64=6", want: "6"},
		{query: "id=a%20b", want: "a b"},
		{query: "name=x", want: ""},
		{query: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			for range 20 {
				r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
				assert.Equal(t, tt.want, web.QueryParamFold(r, "id"))
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
		require.NoError(t, web.Decode(req, &p))
		assert.Equal(t, "a", p.Name)
	})

	t.Run("empty", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		assert.ErrorIs(t, web.Decode(req, &p), web.ErrEmptyBody)
	})

	t.Run("malformed", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		assert.Error(t, web.Decode(req, &p))
	})
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, web.StatusCode(nil))
	assert.Equal(t, http.StatusOK, web.StatusCode(web.NewJSONResponse(1)))
	assert.Equal(t, http.StatusAccepted, web.StatusCode(web.NewJSONResponseWithStatus(1, http.StatusAccepted)))
	assert.Equal(t, http.StatusInternalServerError, web.StatusCode(web.NewError("boom")))
}
