package app

import (
	"fmt"
	"regexp"

	"github.com/zatoichi-labs/plasma"
	"github.com/zatoichi-labs/plasma/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]plasma.Handler
}

var _ plasma.Registry = (*Router)(nil)
var _ plasma.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]plasma.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h plasma.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path
// is found, returns a noSuchPath Handler. This function never returns nil.
func (r *Router) Handler(path string) plasma.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.CheckResult, error) {
	path := plasma.GetPath(tx)
	return r.Handler(path).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx plasma.Context, store plasma.KVStore, tx plasma.Tx) (*plasma.DeliverResult, error) {
	path := plasma.GetPath(tx)
	return r.Handler(path).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotRoute
type notFoundHandler string

func (path notFoundHandler) Check(plasma.Context, plasma.KVStore, plasma.Tx) (*plasma.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotRoute, "no handler for %q", string(path))
}

func (path notFoundHandler) Deliver(plasma.Context, plasma.KVStore, plasma.Tx) (*plasma.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotRoute, "no handler for %q", string(path))
}
