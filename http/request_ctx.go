package http

import (
	"context"
	"net"

	"github.com/google/uuid"
)

type RequestCtx struct {
	ctx context.Context

	ConnID     uuid.UUID
	RemoteAddr net.Addr

	Request  Request
	Response Response
}

// Context carries the span of the request being served.
func (reqCtx *RequestCtx) Context() context.Context {
	if reqCtx.ctx == nil {
		return context.Background()
	}
	return reqCtx.ctx
}

func (reqCtx *RequestCtx) reset(ctx context.Context) {
	reqCtx.ctx = ctx
	reqCtx.Request.Reset()
	reqCtx.Response.Reset()
}
