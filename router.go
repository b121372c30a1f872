// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vdispatch

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"rivaas.dev/vdispatch/logging"
	"rivaas.dev/vdispatch/problem"
	"rivaas.dev/vdispatch/strategy"
	"rivaas.dev/vdispatch/version"
)

// HandlerFunc handles a request, or wraps the rest of the chain when used
// as middleware.
type HandlerFunc func(*Context)

// Router dispatches requests to the handler registered for the requested
// version. Routes are registered up front; the first served request freezes
// the table.
//
// Router is safe for concurrent use once serving has started.
type Router struct {
	cfg           strategy.Config
	logger        *slog.Logger
	observer      Observer
	formatter     problem.Formatter
	lifecycles    map[string]*version.Lifecycle
	enforceSunset bool
	warning299    bool
	versionHeader bool
	now           func() time.Time
	optErr        error

	mu         sync.Mutex
	frozen     atomic.Bool
	middleware []HandlerFunc
	routes     map[routeKey]*route
	order      []*route

	pool sync.Pool
}

// New returns a Router. The versioning configuration is validated here so
// that a bad strategy fails at startup.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		cfg:        strategy.Config{Type: strategy.Header, Header: "X-API-Version"},
		logger:     logging.Noop(),
		observer:   nopObserver{},
		formatter:  problem.NewRFC9457(""),
		lifecycles: make(map[string]*version.Lifecycle),
		now:        time.Now,
		routes:     make(map[routeKey]*route),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.optErr != nil {
		return nil, r.optErr
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	r.pool.New = func() any {
		return &Context{router: r}
	}

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("vdispatch: failed to create router: %v", err))
	}

	return r
}

// Config returns the versioning configuration.
func (r *Router) Config() strategy.Config {
	return r.cfg
}

// Use appends middleware. Middleware runs before dispatch, in order, and
// must call c.Next to continue. It panics once serving has started.
func (r *Router) Use(mw ...HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		panic(ErrRoutesFrozen)
	}
	r.middleware = append(r.middleware, mw...)
}

// Handle registers h on method and path for the versions in spec.
// A zero spec serves the configured default versions, or any version when
// there is no default.
//
// Errors:
//   - [ErrNilHandler], [ErrInvalidRoute] for bad arguments
//   - [ErrAmbiguousVersion] when another handler on the route already
//     serves one of the versions
//   - [ErrRoutesFrozen] after serving started
//   - strategy errors for specs the strategy cannot serve
func (r *Router) Handle(method, path string, spec version.Spec, h HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	if method == "" || !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q %q", ErrInvalidRoute, method, path)
	}
	if spec.IsZero() {
		spec = r.cfg.DefaultSpec()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return ErrRoutesFrozen
	}

	expanded := r.cfg.Routes(spec, path)
	pending := make([]candidate, 0, len(expanded))
	for _, er := range expanded {
		filter, err := CreateFilter(h, er.Spec, r.cfg)
		if err != nil {
			return err
		}
		if rt := r.routes[routeKey{method, er.Path}]; rt != nil {
			if err = rt.conflict(er.Spec); err != nil {
				return fmt.Errorf("%s %s: %w", method, er.Path, err)
			}
		}
		pending = append(pending, candidate{spec: er.Spec, filter: filter})
	}

	for i, er := range expanded {
		key := routeKey{method, er.Path}
		rt := r.routes[key]
		if rt == nil {
			rt = newRoute(method, er.Path)
			r.routes[key] = rt
			r.order = append(r.order, rt)
		}
		rt.add(pending[i])
		r.logger.Debug("handler registered", "method", method, "path", er.Path, "versions", er.Spec.String())
	}

	return nil
}

// GET registers a GET handler. It panics on registration errors.
func (r *Router) GET(path string, spec version.Spec, h HandlerFunc) {
	r.mustHandle(http.MethodGet, path, spec, h)
}

// POST registers a POST handler. It panics on registration errors.
func (r *Router) POST(path string, spec version.Spec, h HandlerFunc) {
	r.mustHandle(http.MethodPost, path, spec, h)
}

// PUT registers a PUT handler. It panics on registration errors.
func (r *Router) PUT(path string, spec version.Spec, h HandlerFunc) {
	r.mustHandle(http.MethodPut, path, spec, h)
}

// PATCH registers a PATCH handler. It panics on registration errors.
func (r *Router) PATCH(path string, spec version.Spec, h HandlerFunc) {
	r.mustHandle(http.MethodPatch, path, spec, h)
}

// DELETE registers a DELETE handler. It panics on registration errors.
func (r *Router) DELETE(path string, spec version.Spec, h HandlerFunc) {
	r.mustHandle(http.MethodDelete, path, spec, h)
}

func (r *Router) mustHandle(method, path string, spec version.Spec, h HandlerFunc) {
	if err := r.Handle(method, path, spec, h); err != nil {
		panic(err)
	}
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method   string
	Path     string
	Versions []string // spec of each handler, in dispatch order
}

// Routes lists the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RouteInfo, 0, len(r.order))
	for _, rt := range r.order {
		info := RouteInfo{Method: rt.method, Path: rt.path}
		for _, c := range rt.candidates {
			info.Versions = append(info.Versions, c.spec.String())
		}
		out = append(out, info)
	}

	return out
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !r.frozen.Load() {
		r.mu.Lock()
		r.frozen.Store(true)
		r.mu.Unlock()
	}

	c := r.acquire(w, req)
	defer r.release(c)

	c.route = r.routes[routeKey{req.Method, req.URL.Path}]
	c.handlers = append(c.handlers, r.middleware...)
	c.handlers = append(c.handlers, r.dispatch)
	c.Next()
}
