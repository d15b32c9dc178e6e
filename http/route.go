package http

// Responder produces the response for a request that passed framing and validation.
type Responder interface {
	Respond(ctx *RequestCtx)
}

type Handler func(ctx *RequestCtx)

func (h Handler) Respond(ctx *RequestCtx) {
	h(ctx)
}

type Route struct {
	Methods []string
	Path    string
	Handler Handler
}

var NotFoundHandler Handler = func(ctx *RequestCtx) {
	ctx.Response.WithStatus(StatusNotFound).WithText("not found")
}

// PlaceholderHandler answers every request with an empty 200 response.
var PlaceholderHandler Handler = func(ctx *RequestCtx) {
	ctx.Response.WithStatus(StatusOK)
}
