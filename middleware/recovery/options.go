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

// Package recovery recovers panics raised by handlers, extractors and
// downstream middleware and answers with a 500 problem details response.
package recovery

import (
	"log/slog"

	"rivaas.dev/vdispatch"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	silent     bool
	handler    func(c *vdispatch.Context, err any)
	stackTrace bool
	stackSize  int
}

func defaultConfig() *config {
	return &config{
		handler:    defaultHandler,
		stackTrace: true,
		stackSize:  4 << 10,
	}
}

// WithoutLogging disables panic logging.
//
// Example:
//
//	recovery.New(recovery.WithoutLogging())
func WithoutLogging() Option {
	return func(cfg *config) {
		cfg.silent = true
	}
}

// WithLogger sets the logger used for panics. By default the
// request-scoped logger of the context is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHandler sets a custom handler for writing the error response.
//
// Example:
//
//	recovery.New(recovery.WithHandler(func(c *vdispatch.Context, err any) {
//	    c.String(http.StatusServiceUnavailable, "try again")
//	}))
func WithHandler(handler func(c *vdispatch.Context, err any)) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.handler = handler
		}
	}
}

// WithStackTrace enables or disables stack trace capture.
// Default: true
func WithStackTrace(enabled bool) Option {
	return func(cfg *config) {
		cfg.stackTrace = enabled
	}
}

// WithStackSize sets the maximum size of the stack trace in bytes.
// Default: 4KB
func WithStackSize(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}
