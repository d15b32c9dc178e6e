package http

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/freekieb7/formserve/test"
)

func newRequestCtx(method, path string) *RequestCtx {
	ctx := &RequestCtx{}
	ctx.reset(context.Background())
	ctx.Request.Method = method
	ctx.Request.Path = path
	return ctx
}

func TestRouterRespond(t *testing.T) {
	router := NewRouter()
	router.GET("/", func(ctx *RequestCtx) {
		ctx.Response.WithText("index")
	})
	router.POST("/messages", func(ctx *RequestCtx) {
		ctx.Response.WithStatus(StatusCreated)
	})

	testCases := []struct {
		method, path string
		status       uint16
	}{
		{MethodGet, "/", StatusOK},
		{MethodPost, "/messages", StatusCreated},
		{MethodPost, "/", StatusMethodNotAllowed},
		{MethodGet, "/missing", StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			ctx := newRequestCtx(tc.method, tc.path)
			router.Respond(ctx)
			test.Equal(t, tc.status, ctx.Response.Status)
		})
	}
}

func TestRouterGroupAndMiddleware(t *testing.T) {
	var calls []string
	trace := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx *RequestCtx) {
				calls = append(calls, name)
				next(ctx)
			}
		}
	}

	router := NewRouter()
	router.Middleware = append(router.Middleware, trace("router"))
	router.Group("/v1", func(group *Router) {
		group.GET("/ping", func(ctx *RequestCtx) {
			ctx.Response.WithText("pong")
		}, trace("route"))
	}, trace("group"))

	ctx := newRequestCtx(MethodGet, "/v1/ping")
	router.Respond(ctx)

	test.Equal(t, "pong", string(ctx.Response.Body))
	test.Equal(t, []string{"router", "group", "route"}, calls)
}

func TestRecoverMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RecoverMiddleware(logger)(func(ctx *RequestCtx) {
		ctx.Response.WithText("partial")
		panic("boom")
	})

	ctx := newRequestCtx(MethodGet, "/")
	handler(ctx)

	test.Equal(t, StatusInternalServerError, ctx.Response.Status)
	test.Equal(t, "something went wrong", string(ctx.Response.Body))
}
