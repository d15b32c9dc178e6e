package http

import (
	"fmt"
	"log/slog"
)

type Middleware func(next Handler) Handler

// RecoverMiddleware turns a panicking handler into a 500 response.
func RecoverMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx *RequestCtx) {
			defer func() {
				if recovered := recover(); recovered != nil {
					logger.ErrorContext(ctx.Context(), "handler panicked",
						"panic", fmt.Sprint(recovered),
						"method", ctx.Request.Method,
						"path", ctx.Request.Path,
					)

					ctx.Response.Reset()
					ctx.Response.WithStatus(StatusInternalServerError).WithText("something went wrong")
				}
			}()

			next(ctx)
		}
	}
}
