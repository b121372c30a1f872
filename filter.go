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
	"rivaas.dev/vdispatch/resolver"
	"rivaas.dev/vdispatch/strategy"
	"rivaas.dev/vdispatch/version"
)

// VersionedHandler is a handler wrapped with its version filter.
// It runs the handler when the request selects it and reports the decision:
// Execute when the handler ran, Record during custom discovery, Skip
// otherwise. Errors come from the extractor and are returned unchanged.
type VersionedHandler func(*Context) (resolver.Match, error)

// CreateFilter wraps h so that it only runs for requests selecting spec.
// Lookup structures are built here, once per handler. A zero spec is
// replaced by the configuration's default spec.
//
// With the custom strategy a request needs two passes over every
// candidate of a route: the first records matches, then
// [SelectBestCandidate] and [SetExecutionPhase] pick the winner, and the
// second pass runs it. Other strategies decide in a single pass.
//
// Example:
//
//	v2, err := vdispatch.CreateFilter(listUsersV2, version.MustOf("2"), cfg)
//	...
//	m, err := v2(c)
func CreateFilter(h HandlerFunc, spec version.Spec, cfg strategy.Config) (VersionedHandler, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if spec.IsZero() {
		spec = cfg.DefaultSpec()
	}

	f, err := strategy.New(spec, cfg)
	if err != nil {
		return nil, err
	}

	return func(c *Context) (resolver.Match, error) {
		m, err := f.Evaluate(c.Request, &c.versioning)
		if err != nil || m.Decision != resolver.Execute {
			return m, err
		}
		c.serve(m.Token, h)

		return m, nil
	}, nil
}

// SelectBestCandidate returns the token chosen by custom discovery: the one
// the client ranked highest, first recorded on ties. The empty token stands
// for a version-neutral handler. It returns false when nothing matched.
func SelectBestCandidate(c *Context) (string, bool) {
	best, ok := c.versioning.SelectBest()
	return best.Token, ok
}

// SetExecutionPhase ends discovery; only the candidate matching token runs
// in the next pass.
func SetExecutionPhase(c *Context, token string) error {
	return c.versioning.BeginExecution(token)
}

// HasPendingCandidates reports whether discovery recorded a candidate that
// has not been executed yet.
func HasPendingCandidates(c *Context) bool {
	return c.versioning.HasPending()
}

// serve runs h as the selected handler for token.
func (c *Context) serve(token string, h HandlerFunc) {
	c.version = token
	if c.router == nil {
		h(c)
		return
	}
	c.router.serveVersion(c, token, h)
}
