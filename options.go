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
	"log/slog"
	"time"

	"rivaas.dev/vdispatch/config"
	"rivaas.dev/vdispatch/problem"
	"rivaas.dev/vdispatch/strategy"
	"rivaas.dev/vdispatch/version"
)

// Option configures a Router.
type Option func(*Router)

// WithVersioning sets the versioning strategy.
// Without it the router reads the X-API-Version header.
//
// Example:
//
//	vdispatch.WithVersioning(strategy.Config{
//	    Type:      strategy.Custom,
//	    Extractor: extractFromQuery,
//	})
func WithVersioning(cfg strategy.Config) Option {
	return func(r *Router) {
		r.cfg = cfg
	}
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver reports resolution outcomes, typically to a
// [rivaas.dev/vdispatch/metrics.Recorder].
func WithObserver(o Observer) Option {
	return func(r *Router) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithProblemFormatter replaces the RFC 9457 formatter used for error
// responses.
func WithProblemFormatter(f problem.Formatter) Option {
	return func(r *Router) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithLifecycle declares the lifecycle of a version token.
//
// Example:
//
//	vdispatch.WithLifecycle("1",
//	    version.Deprecated(),
//	    version.Sunset(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)),
//	    version.MigrationDocs("https://docs.example.com/v1-to-v2"),
//	)
func WithLifecycle(token string, opts ...version.LifecycleOption) Option {
	return func(r *Router) {
		r.lifecycles[token] = version.ApplyLifecycleOptions(opts...)
	}
}

// WithSunsetEnforcement answers 410 Gone for versions past their sunset date.
func WithSunsetEnforcement() Option {
	return func(r *Router) {
		r.enforceSunset = true
	}
}

// WithWarning299 adds a "Warning: 299" header to responses served by
// deprecated versions.
func WithWarning299() Option {
	return func(r *Router) {
		r.warning299 = true
	}
}

// WithResponseHeaders echoes the executed version in X-API-Version.
func WithResponseHeaders() Option {
	return func(r *Router) {
		r.versionHeader = true
	}
}

// WithClock replaces time.Now for sunset checks.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// WithConfig applies a loaded configuration file: strategy, lifecycles and
// response toggles. extractor is used when the strategy is custom.
//
// Example:
//
//	file := config.MustNew(config.WithFile("vdispatch.yaml")).MustLoad(ctx)
//	r := vdispatch.MustNew(vdispatch.WithConfig(file, nil))
func WithConfig(file *config.File, extractor version.Extractor) Option {
	return func(r *Router) {
		cfg, err := file.StrategyConfig(extractor)
		if err != nil {
			r.optErr = err
			return
		}
		r.cfg = cfg
		for token, opts := range file.LifecycleOptions() {
			r.lifecycles[token] = version.ApplyLifecycleOptions(opts...)
		}
		r.versionHeader = r.versionHeader || file.Responses.Header
		r.warning299 = r.warning299 || file.Responses.Warning
		r.enforceSunset = r.enforceSunset || file.Responses.Enforce
	}
}
