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

// Package requestid tags each request with an id, echoed in a response
// header, attached to the request logger and to the active span.
//
//	r.Use(requestid.New(requestid.WithULID()))
package requestid

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/vdispatch"
)

// DefaultHeader carries the request id.
const DefaultHeader = "X-Request-ID"

type contextKey struct{}

// Option configures the middleware.
type Option func(*config)

type config struct {
	header        string
	generator     func() string
	allowClientID bool
	maxLength     int
}

func defaultConfig() *config {
	return &config{
		header:        DefaultHeader,
		generator:     generateUUIDv7,
		allowClientID: true,
		maxLength:     128,
	}
}

// WithHeader sets the header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithULID generates ULIDs instead of UUIDv7.
func WithULID() Option {
	return func(c *config) {
		c.generator = generateULID
	}
}

// WithGenerator sets a custom id generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generator = fn
		}
	}
}

// WithAllowClientID controls whether an id sent by the client is reused.
// Client ids longer than 128 bytes are always replaced.
func WithAllowClientID(allow bool) Option {
	return func(c *config) {
		c.allowClientID = allow
	}
}

func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

func generateULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// New returns the middleware.
func New(opts ...Option) vdispatch.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *vdispatch.Context) {
		var id string
		if cfg.allowClientID {
			id = c.Request.Header.Get(cfg.header)
			if len(id) > cfg.maxLength {
				id = ""
			}
		}
		if id == "" {
			id = cfg.generator()
		}

		c.Response.Header().Set(cfg.header, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), contextKey{}, id))
		c.SetLogger(c.Logger().With("request_id", id))
		if span := c.Span(); span.IsRecording() {
			span.SetAttributes(attribute.String("http.request.id", id))
		}

		c.Next()
	}
}

// Get returns the request id, or "" when the middleware did not run.
func Get(c *vdispatch.Context) string {
	return FromContext(c.Request.Context())
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
