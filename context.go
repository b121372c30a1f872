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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/vdispatch/logging"
	"rivaas.dev/vdispatch/resolver"
)

// Context carries one request through middleware and dispatch.
//
// Contexts are pooled: do not keep a reference after the handler returns,
// and do not use one from another goroutine.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter

	router     *Router
	rw         responseWriter
	versioning resolver.State
	version    string
	route      *route
	logger     *slog.Logger
	handlers   []HandlerFunc
	index      int
	aborted    bool
}

// Next runs the remaining handlers of the chain.
func (c *Context) Next() {
	c.index++
	for c.index < len(c.handlers) && !c.aborted {
		c.handlers[c.index](c)
		c.index++
	}
}

// Abort stops the chain after the current handler.
func (c *Context) Abort() {
	c.aborted = true
}

// IsAborted reports whether Abort was called.
func (c *Context) IsAborted() bool {
	return c.aborted
}

// Version returns the version token the executing handler was selected for.
// It is empty before dispatch and for version-neutral handlers serving a
// request without a version.
func (c *Context) Version() string {
	return c.version
}

// Route returns "METHOD /path" of the matched route, or "".
func (c *Context) Route() string {
	if c.route == nil {
		return ""
	}

	return c.route.pattern
}

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		base := logging.Noop()
		if c.router != nil {
			base = c.router.logger
		}
		c.logger = base.With("method", c.Request.Method, "path", c.Request.URL.Path)
	}

	return c.logger
}

// SetLogger replaces the request-scoped logger, e.g. to add a request id.
func (c *Context) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Span returns the active trace span, which is a no-op span without tracing.
func (c *Context) Span() trace.Span {
	return trace.SpanFromContext(c.Request.Context())
}

// Status returns the status written so far, or 0.
func (c *Context) Status() int {
	return c.rw.status
}

// Written reports whether the response header has been sent.
func (c *Context) Written() bool {
	return c.rw.status != 0
}

// String writes a text/plain response.
func (c *Context) String(status int, format string, args ...any) {
	c.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Response.WriteHeader(status)
	if len(args) == 0 {
		_, _ = fmt.Fprint(c.Response, format)
		return
	}
	_, _ = fmt.Fprintf(c.Response, format, args...)
}

// JSON writes v as an application/json response.
func (c *Context) JSON(status int, v any) error {
	c.Response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Response.WriteHeader(status)

	return json.NewEncoder(c.Response).Encode(v)
}

// Fail writes err as a problem details response and aborts the chain.
// The status comes from the error, 500 by default.
func (c *Context) Fail(err error) {
	c.Abort()
	if c.router == nil {
		http.Error(c.Response, err.Error(), http.StatusInternalServerError)
		return
	}
	c.router.writeProblem(c, err)
}

func (c *Context) reset() {
	c.Request = nil
	c.Response = nil
	c.rw = responseWriter{}
	c.versioning.Reset()
	c.version = ""
	c.route = nil
	c.logger = nil
	clear(c.handlers)
	c.handlers = c.handlers[:0]
	c.index = -1
	c.aborted = false
}

// responseWriter records the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// NewContext returns a Context that is not bound to a Router, for driving
// filters built with [CreateFilter] from another dispatcher.
func NewContext(w http.ResponseWriter, req *http.Request) *Context {
	c := &Context{index: -1}
	c.rw.ResponseWriter = w
	c.Response = &c.rw
	c.Request = req

	return c
}
