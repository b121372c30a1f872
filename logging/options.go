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
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// WithHandlerType sets the logging handler type.
func WithHandlerType(t HandlerType) Option {
	return func(c *config) { c.handlerType = t }
}

// WithJSONHandler uses JSON structured logging (default).
func WithJSONHandler() Option {
	return WithHandlerType(JSONHandler)
}

// WithTextHandler uses text key=value logging.
func WithTextHandler() Option {
	return WithHandlerType(TextHandler)
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithDebugLevel enables debug logging.
func WithDebugLevel() Option {
	return WithLevel(LevelDebug)
}

// WithLevelName sets the level from its name ("debug", "info", "warn",
// "error"), as found in configuration files. An empty name keeps the default.
func WithLevelName(name string) Option {
	return func(c *config) {
		if name == "" {
			return
		}
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
			c.levelErr = fmt.Errorf("%w: %q", ErrInvalidLevel, name)
			return
		}
		c.level = lvl
	}
}

// WithServiceName sets the service name added to every entry.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version added to every entry.
func WithServiceVersion(v string) Option {
	return func(c *config) { c.serviceVersion = v }
}

// WithEnvironment sets the environment added to every entry.
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// WithSource enables source code location in logs.
func WithSource(enabled bool) Option {
	return func(c *config) { c.addSource = enabled }
}

// WithReplaceAttr sets a custom attribute replacer.
// Return an empty [slog.Attr] to drop the attribute.
func WithReplaceAttr(fn func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(c *config) { c.replaceAttr = fn }
}
