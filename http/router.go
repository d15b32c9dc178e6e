package http

import "slices"

type Router struct {
	Routes     []Route
	Middleware []Middleware
}

func NewRouter() *Router {
	return &Router{
		Routes: make([]Route, 0),
	}
}

func (router *Router) GET(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{MethodGet}, path, handler, middleware...)
}

func (router *Router) POST(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{MethodPost}, path, handler, middleware...)
}

func (router *Router) Any(methods []string, path string, handler Handler, middleware ...Middleware) {
	for _, middleware := range middleware {
		handler = middleware(handler)
	}

	router.Routes = append(router.Routes, Route{
		Methods: methods,
		Path:    path,
		Handler: handler,
	})
}

func (router *Router) Group(path string, groupFunc func(group *Router), middlewareList ...Middleware) {
	group := NewRouter()

	groupFunc(group)

	for _, route := range group.Routes {
		route.Path = path + route.Path
		for _, middleware := range middlewareList {
			route.Handler = middleware(route.Handler)
		}

		router.Routes = append(router.Routes, route)
	}
}

// Match returns the handler registered for method and path. A path known
// under other methods yields a 405 handler, an unknown path NotFoundHandler.
func (router *Router) Match(method, path string) Handler {
	pathKnown := false
	for _, route := range router.Routes {
		if route.Path != path {
			continue
		}
		pathKnown = true

		if slices.Contains(route.Methods, method) {
			return route.Handler
		}
	}

	if pathKnown {
		return methodNotAllowedHandler
	}
	return NotFoundHandler
}

func (router *Router) Respond(ctx *RequestCtx) {
	handler := router.Match(ctx.Request.Method, ctx.Request.Path)
	for _, middleware := range router.Middleware {
		handler = middleware(handler)
	}

	handler(ctx)
}

var methodNotAllowedHandler Handler = func(ctx *RequestCtx) {
	ctx.Response.WithStatus(StatusMethodNotAllowed).WithText("method not allowed")
}
