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
	"fmt"

	"rivaas.dev/vdispatch/problem"
	"rivaas.dev/vdispatch/resolver"
)

// dispatch is the last handler of every chain.
func (r *Router) dispatch(c *Context) {
	rt := c.route
	if rt == nil {
		r.reject(c, OutcomeNotFound, ErrRouteNotFound)
		return
	}

	if r.cfg.TwoPass() {
		r.dispatchTwoPass(c, rt)
		return
	}

	for _, cand := range rt.candidates {
		m, err := cand.filter(c)
		if err != nil {
			r.reject(c, OutcomeError, err)
			return
		}
		if m.Decision == resolver.Execute {
			return
		}
	}
	r.reject(c, OutcomeNotFound, ErrNoMatchingVersion)
}

// dispatchTwoPass offers the request to every candidate without running
// any, selects the best recorded match and runs only that one.
func (r *Router) dispatchTwoPass(c *Context, rt *route) {
	discovery, err := c.versioning.BeginDiscovery()
	if err != nil {
		r.reject(c, OutcomeError, err)
		return
	}
	for _, cand := range rt.candidates {
		if _, err = cand.filter(c); err != nil {
			r.reject(c, OutcomeError, err)
			return
		}
	}

	selection, ok := discovery.Resolve()
	if !ok {
		r.reject(c, OutcomeNotFound, ErrNoMatchingVersion)
		return
	}
	if err = selection.BeginExecution(); err != nil {
		r.reject(c, OutcomeError, err)
		return
	}

	for _, cand := range rt.candidates {
		m, err := cand.filter(c)
		if err != nil {
			r.reject(c, OutcomeError, err)
			return
		}
		if m.Decision == resolver.Execute {
			return
		}
	}

	// Unreachable with non-overlapping registrations.
	r.reject(c, OutcomeError, fmt.Errorf("%w: selected version %q did not run",
		resolver.ErrUnknownCandidate, selection.Candidate().Token))
}

// reject records a failed dispatch and writes the problem response.
func (r *Router) reject(c *Context, outcome string, err error) {
	ctx := c.Request.Context()
	r.observer.RecordResolution(ctx, string(r.cfg.Type), outcome, c.version, c.Route())
	r.annotateUnresolved(c, outcome)

	if outcome == OutcomeError {
		c.Logger().Error("version resolution failed", "error", err, "strategy", string(r.cfg.Type))
	} else {
		c.Logger().Debug("no handler for request", "outcome", outcome, "error", err)
	}

	c.Fail(err)
}

func (r *Router) writeProblem(c *Context, err error) {
	if c.Written() {
		c.Logger().Warn("response already started, dropping error", "error", err)
		return
	}

	resp := r.formatter.Format(c.Request, err)
	if werr := problem.Write(c.Response, resp); werr != nil {
		c.Logger().Warn("failed to write error response", "error", werr)
	}
}
