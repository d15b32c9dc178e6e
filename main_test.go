package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/freekieb7/formserve/http"
	"github.com/freekieb7/formserve/test"
)

func TestFormatValues(t *testing.T) {
	values := http.ParseQuery("b=2&a=1&a=3")
	test.Equal(t, "a: 1, 3\nb: 2\n", formatValues(values))
	test.Equal(t, "", formatValues(http.Values{}))
}

func TestPostMessage(t *testing.T) {
	testCases := []struct {
		name        string
		headers     []string
		body        string
		contentType string
		expected    string
	}{
		{
			name:        "form encoded",
			headers:     []string{"Content-Type: application/x-www-form-urlencoded"},
			body:        "title=Hello+world&tag=a&tag=b",
			contentType: "text/plain; charset=utf-8",
			expected:    "tag: a, b\ntitle: Hello world\n",
		},
		{
			name:        "raw body",
			headers:     []string{"Content-Type: application/json"},
			body:        `{"title":"hello"}`,
			contentType: "application/json",
			expected:    `{"title":"hello"}`,
		},
		{
			name:        "no content type",
			body:        "abc",
			contentType: "application/octet-stream",
			expected:    "abc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ctx http.RequestCtx
			ctx.Request.Method = http.MethodPost
			ctx.Request.Headers = tc.headers
			ctx.Request.Body = []byte(tc.body)

			postMessage(&ctx)

			test.Equal(t, http.StatusCreated, ctx.Response.Status)
			test.Equal(t, tc.expected, string(ctx.Response.Body))
			test.Equal(t, []http.HeaderField{{Name: "Content-Type", Value: tc.contentType}}, ctx.Response.Headers)
		})
	}
}

func TestNewRouter(t *testing.T) {
	router := newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	testCases := []struct {
		method, path, query string
		status              uint16
		body                string
	}{
		{http.MethodGet, "/messages", "name=Ada&name=Bob", http.StatusOK, "name: Ada, Bob\n"},
		{http.MethodPost, "/messages", "", http.StatusCreated, "hi"},
		{http.MethodGet, "/messages/", "", http.StatusNotFound, "not found"},
		{http.MethodPost, "/", "", http.StatusMethodNotAllowed, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var ctx http.RequestCtx
			ctx.Request.Method = tc.method
			ctx.Request.Path = tc.path
			ctx.Request.Query = http.ParseQuery(tc.query)
			ctx.Request.Body = []byte("hi")
			ctx.Response.Reset()

			router.Respond(&ctx)

			test.Equal(t, tc.status, ctx.Response.Status)
			if tc.body != "" {
				test.Equal(t, tc.body, string(ctx.Response.Body))
			}
		})
	}
}
