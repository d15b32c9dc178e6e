package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/freekieb7/formserve/http"
	"github.com/freekieb7/formserve/telemetry"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const (
	name        = "github.com/freekieb7/formserve"
	defaultPort = 9999
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: "formserve",
		Disabled:    os.Getenv("OTEL_SDK_DISABLED") == "true",
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
	}()

	logger := otelslog.NewLogger(name)

	port := defaultPort
	if v := os.Getenv("PORT"); v != "" {
		if port, err = strconv.Atoi(v); err != nil {
			return err
		}
	}

	router := newRouter(logger)

	server := http.NewServer("formserve", router, http.DefaultConfig())
	server.Logger = logger

	serverErrorChannel := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", port)
		serverErrorChannel <- server.Listen(port, http.DefaultBacklog)
	}()

	select {
	case err := <-serverErrorChannel:
		return err
	case <-ctx.Done():
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newRouter(logger *slog.Logger) *http.Router {
	router := http.NewRouter()
	router.Middleware = append(router.Middleware, http.RecoverMiddleware(logger))
	router.GET("/", func(ctx *http.RequestCtx) {
		ctx.Response.WithText("formserve: GET /messages?name=value or POST /messages\n")
	})
	router.Group("/messages", func(group *http.Router) {
		group.GET("", func(ctx *http.RequestCtx) {
			ctx.Response.WithText(formatValues(ctx.Request.Query))
		})
		group.POST("", postMessage)
	})
	return router
}

// postMessage echoes a submitted form. URL-encoded bodies are decoded, any
// other body is returned as received.
func postMessage(ctx *http.RequestCtx) {
	contentType, _ := ctx.Request.HeaderValue("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		ctx.Response.WithStatus(http.StatusCreated).WithText(formatValues(http.ParseQuery(string(ctx.Request.Body))))
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Response.WithStatus(http.StatusCreated).WithBytes(contentType, ctx.Request.Body)
}

func formatValues(values http.Values) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(values[name], ", "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
