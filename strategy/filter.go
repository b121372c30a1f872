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

	"rivaas.dev/vdispatch/resolver"
	"rivaas.dev/vdispatch/version"
)

// Filter decides what a registered handler does with a request.
//
// Stateless strategies answer Execute or Skip and ignore the state.
// The custom strategy records into and reads from the per-request state.
type Filter interface {
	Evaluate(req *http.Request, st *resolver.State) (resolver.Match, error)
	Type() Type
}

// New builds the filter for one handler.
// All lookup structures are prepared here so that evaluation does not
// allocate. The spec must be a token spec or neutral.
func New(spec version.Spec, cfg Config) (Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if spec.IsZero() {
		return nil, ErrUnversionedSpec
	}

	switch cfg.Type {
	case Custom:
		return &customFilter{spec: spec, extract: cfg.Extractor}, nil
	case Header:
		return newHeaderFilter(spec, cfg), nil
	case MediaType:
		return &mediaTypeFilter{spec: spec, key: cfg.mediaKey()}, nil
	case URI:
		return newURIFilter(spec), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, cfg.Type)
}

// ═══════════════════════════════════════════════════════════════════════════════
// Custom
// ═══════════════════════════════════════════════════════════════════════════════

type customFilter struct {
	spec    version.Spec
	extract version.Extractor
}

func (f *customFilter) Evaluate(req *http.Request, st *resolver.State) (resolver.Match, error) {
	result, err := st.Extract(req, f.extract)
	if err != nil {
		return resolver.Match{}, err
	}

	return st.Offer(f.spec, result), nil
}

func (f *customFilter) Type() Type {
	return Custom
}

// ═══════════════════════════════════════════════════════════════════════════════
// Header
// ═══════════════════════════════════════════════════════════════════════════════

type headerFilter struct {
	spec     version.Spec
	header   string
	fallback string // first default version a token spec serves, "" if none
}

func newHeaderFilter(spec version.Spec, cfg Config) *headerFilter {
	f := &headerFilter{spec: spec, header: cfg.canonicalHeader()}
	if spec.IsNeutral() {
		return f
	}
	for _, d := range cfg.Default {
		if spec.Matches(d) {
			f.fallback = d
			break
		}
	}

	return f
}

func (f *headerFilter) Evaluate(req *http.Request, _ *resolver.State) (resolver.Match, error) {
	requested := strings.TrimSpace(req.Header.Get(f.header))
	if requested != "" {
		if f.spec.Matches(requested) {
			return resolver.Match{Decision: resolver.Execute, Token: requested}, nil
		}

		return resolver.Match{Decision: resolver.Skip}, nil
	}

	if f.fallback != "" {
		return resolver.Match{Decision: resolver.Execute, Token: f.fallback}, nil
	}
	if f.spec.IsNeutral() {
		return resolver.Match{Decision: resolver.Execute}, nil
	}

	return resolver.Match{Decision: resolver.Skip}, nil
}

func (f *headerFilter) Type() Type {
	return Header
}

// ═══════════════════════════════════════════════════════════════════════════════
// Media type
// ═══════════════════════════════════════════════════════════════════════════════

type mediaTypeFilter struct {
	spec version.Spec
	key  string
}

func (f *mediaTypeFilter) Evaluate(req *http.Request, _ *resolver.State) (resolver.Match, error) {
	requested, found := AcceptParam(req.Header.Get("Accept"), f.key)
	if !found {
		if f.spec.IsNeutral() {
			return resolver.Match{Decision: resolver.Execute}, nil
		}

		return resolver.Match{Decision: resolver.Skip}, nil
	}

	if f.spec.Matches(requested) {
		return resolver.Match{Decision: resolver.Execute, Token: requested}, nil
	}

	return resolver.Match{Decision: resolver.Skip}, nil
}

func (f *mediaTypeFilter) Type() Type {
	return MediaType
}

// AcceptParam returns the value of the key parameter from the first media
// range in an Accept header that carries it.
//
// Examples (key "v"):
//   - "application/json;v=2" → "2", true
//   - "text/html, application/json; v=\"2.1\"" → "2.1", true
//   - "application/json" → "", false
//   - "application/json;v=" → "", false
func AcceptParam(accept, key string) (string, bool) {
	if accept == "" || key == "" {
		return "", false
	}

	for mediaRange := range strings.SplitSeq(accept, ",") {
		semi := strings.IndexByte(mediaRange, ';')
		if semi < 0 {
			continue
		}
		for param := range strings.SplitSeq(mediaRange[semi+1:], ";") {
			name, value, ok := strings.Cut(param, "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(name), key) {
				continue
			}
			value = strings.Trim(strings.TrimSpace(value), `"`)
			if value != "" {
				return value, true
			}
		}
	}

	return "", false
}

// ═══════════════════════════════════════════════════════════════════════════════
// URI
// ═══════════════════════════════════════════════════════════════════════════════

// uriFilter always runs: the route table already matched the versioned path.
type uriFilter struct {
	token string
}

func newURIFilter(spec version.Spec) *uriFilter {
	f := &uriFilter{}
	if tokens := spec.Tokens(); len(tokens) > 0 {
		f.token = tokens[0]
	}

	return f
}

func (f *uriFilter) Evaluate(*http.Request, *resolver.State) (resolver.Match, error) {
	return resolver.Match{Decision: resolver.Execute, Token: f.token}, nil
}

func (f *uriFilter) Type() Type {
	return URI
}
