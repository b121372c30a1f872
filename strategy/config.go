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

package strategy

import (
	"fmt"
	"net/http"
	"strings"

	"rivaas.dev/vdispatch/version"
)

// Type names a versioning strategy.
type Type string

const (
	// Custom resolves versions with an application extractor.
	Custom Type = "custom"
	// Header reads the version from a request header.
	Header Type = "header"
	// MediaType reads the version from an Accept header parameter.
	MediaType Type = "media-type"
	// URI reads the version from a path prefix.
	URI Type = "uri"
)

// DefaultURIPrefix is prepended to tokens in versioned paths ("/v2/users").
const DefaultURIPrefix = "v"

// Config is the application-wide versioning configuration.
type Config struct {
	// Type selects the strategy.
	Type Type

	// Header is the request header carrying the version (Header only).
	Header string

	// Key is the Accept parameter carrying the version, e.g. "v" for
	// "application/json;v=2" (MediaType only). A trailing "=" is ignored.
	Key string

	// Prefix is prepended to tokens in URI paths (URI only).
	// Empty means DefaultURIPrefix.
	Prefix string

	// Default lists the versions assumed when a request carries none.
	// Handlers registered without a spec serve these versions.
	Default []string

	// Extractor returns the requested versions (Custom only).
	Extractor version.Extractor
}

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	switch c.Type {
	case Custom:
		if c.Extractor == nil {
			return ErrNilExtractor
		}
	case Header:
		if strings.TrimSpace(c.Header) == "" {
			return ErrEmptyHeaderName
		}
	case MediaType:
		if c.mediaKey() == "" {
			return ErrEmptyMediaTypeKey
		}
	case URI:
		if strings.Contains(c.Prefix, "/") {
			return fmt.Errorf("%w: %q", ErrInvalidPrefix, c.Prefix)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStrategy, c.Type)
	}

	if len(c.Default) > 0 {
		if _, err := version.Of(c.Default...); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDefault, err)
		}
	}

	return nil
}

// DefaultSpec returns the spec served by handlers registered without one.
// Without configured defaults it is [version.Neutral].
func (c Config) DefaultSpec() version.Spec {
	if len(c.Default) == 0 {
		return version.Neutral
	}
	s, err := version.Of(c.Default...)
	if err != nil {
		return version.Neutral
	}

	return s
}

// TwoPass reports whether filters built from this configuration need the
// discovery/execution protocol.
func (c Config) TwoPass() bool {
	return c.Type == Custom
}

func (c Config) mediaKey() string {
	return strings.TrimSuffix(strings.TrimSpace(c.Key), "=")
}

func (c Config) uriPrefix() string {
	if c.Prefix == "" {
		return DefaultURIPrefix
	}

	return c.Prefix
}

// Route is a concrete path a handler is registered under.
type Route struct {
	Path string
	Spec version.Spec
}

// Routes expands a handler registration into the paths it is served on.
//
// With the URI strategy every token gets its own prefixed path, and a
// neutral spec keeps the bare path. Other strategies serve the path as-is.
//
// Example:
//
//	cfg := strategy.Config{Type: strategy.URI}
//	cfg.Routes(version.MustOf("1", "2"), "/users")
//	// [{/v1/users 1} {/v2/users 2}]
func (c Config) Routes(spec version.Spec, path string) []Route {
	if c.Type != URI || spec.IsNeutral() {
		return []Route{{Path: path, Spec: spec}}
	}

	tokens := spec.Tokens()
	routes := make([]Route, 0, len(tokens))
	for _, t := range tokens {
		p := "/" + c.uriPrefix() + t
		if path != "/" {
			p += path
		}
		routes = append(routes, Route{Path: p, Spec: version.MustOf(t)})
	}

	return routes
}

// canonicalHeader returns the canonical form of the configured header.
func (c Config) canonicalHeader() string {
	return http.CanonicalHeaderKey(strings.TrimSpace(c.Header))
}
