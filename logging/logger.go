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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var noop = slog.New(slog.DiscardHandler)

// Noop returns a logger that discards everything.
func Noop() *slog.Logger {
	return noop
}

type config struct {
	handlerType    HandlerType
	output         io.Writer
	level          Level
	levelErr       error
	serviceName    string
	serviceVersion string
	environment    string
	addSource      bool
	replaceAttr    func(groups []string, a slog.Attr) slog.Attr
}

// Option is a functional option for configuring the logger.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		handlerType: JSONHandler,
		output:      os.Stdout,
		level:       LevelInfo,
	}
}

// New builds a logger with the given options.
func New(opts ...Option) (*slog.Logger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.levelErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", cfg.levelErr)
	}
	if cfg.output == nil {
		return nil, fmt.Errorf("invalid configuration: %w", ErrNilOutput)
	}

	hopts := &slog.HandlerOptions{
		Level:       cfg.level,
		AddSource:   cfg.addSource,
		ReplaceAttr: cfg.buildReplaceAttr(),
	}

	var handler slog.Handler
	switch cfg.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(cfg.output, hopts)
	case TextHandler:
		handler = slog.NewTextHandler(cfg.output, hopts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandler, cfg.handlerType)
	}

	logger := slog.New(handler)

	var attrs []any
	if cfg.serviceName != "" {
		attrs = append(attrs, "service", cfg.serviceName)
	}
	if cfg.serviceVersion != "" {
		attrs = append(attrs, "service_version", cfg.serviceVersion)
	}
	if cfg.environment != "" {
		attrs = append(attrs, "env", cfg.environment)
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	return logger, nil
}

// MustNew builds a logger or panics on error.
func MustNew(opts ...Option) *slog.Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}

	return l
}

// buildReplaceAttr redacts sensitive fields before the user replacer runs.
func (c *config) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case "password", "token", "secret", "api_key", "authorization":
			return slog.String(a.Key, "***REDACTED***")
		}
		if c.replaceAttr != nil {
			return c.replaceAttr(groups, a)
		}

		return a
	}
}

// Enabled reports whether logger emits records at level.
func Enabled(logger *slog.Logger, level Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}
