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

package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"rivaas.dev/vdispatch"
	"rivaas.dev/vdispatch/problem"
)

// ErrPanic is wrapped by the error reported for a recovered panic.
var ErrPanic = errors.New("recovery: panic")

// New returns the middleware. Register it first so it wraps the whole chain.
//
// Example:
//
//	r := vdispatch.MustNew()
//	r.Use(recovery.New())
func New(opts ...Option) vdispatch.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *vdispatch.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if span := c.Span(); span.IsRecording() {
				span.SetStatus(codes.Error, "panic recovered")
				span.SetAttributes(
					attribute.Bool("exception.escaped", true),
					attribute.String("exception.type", fmt.Sprintf("%T", rec)),
					attribute.String("exception.message", fmt.Sprint(rec)),
				)
				span.RecordError(fmt.Errorf("%w: %v", ErrPanic, rec))
			}

			if !cfg.silent {
				logger := cfg.logger
				if logger == nil {
					logger = c.Logger()
				}
				attrs := []any{slog.Any("panic", rec)}
				if cfg.stackTrace {
					attrs = append(attrs, slog.String("stack", stack(cfg.stackSize)))
				}
				logger.Error("panic recovered", attrs...)
			}

			c.Abort()
			cfg.handler(c, rec)
		}()

		c.Next()
	}
}

func defaultHandler(c *vdispatch.Context, _ any) {
	if c.Written() {
		return
	}
	c.Fail(problem.WithStatus(errors.New("internal server error"), http.StatusInternalServerError))
}

func stack(size int) string {
	s := debug.Stack()
	if len(s) > size {
		s = s[:size]
	}

	return string(s)
}
