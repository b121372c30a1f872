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

	"rivaas.dev/vdispatch/version"
)

type routeKey struct {
	method string
	path   string
}

type candidate struct {
	spec   version.Spec
	filter VersionedHandler
}

// route holds the handlers registered on one method and path.
// Token candidates keep registration order; the neutral candidate, if any,
// is always last.
type route struct {
	method     string
	path       string
	pattern    string
	candidates []candidate
	byToken    map[string]int
	neutral    int
}

func newRoute(method, path string) *route {
	return &route{
		method:  method,
		path:    path,
		pattern: method + " " + path,
		byToken: make(map[string]int),
		neutral: -1,
	}
}

// conflict reports whether spec overlaps a handler already on the route.
func (rt *route) conflict(spec version.Spec) error {
	if spec.IsNeutral() {
		if rt.neutral >= 0 {
			return fmt.Errorf("%w: a version-neutral handler is already registered", ErrAmbiguousVersion)
		}

		return nil
	}
	for _, t := range spec.Tokens() {
		if i, ok := rt.byToken[t]; ok {
			return fmt.Errorf("%w: version %q already served by handler for %s",
				ErrAmbiguousVersion, t, rt.candidates[i].spec)
		}
	}

	return nil
}

func (rt *route) add(c candidate) {
	if c.spec.IsNeutral() {
		rt.candidates = append(rt.candidates, c)
		rt.neutral = len(rt.candidates) - 1

		return
	}

	at := len(rt.candidates)
	if rt.neutral >= 0 {
		at = rt.neutral
		rt.neutral++
	}
	rt.candidates = append(rt.candidates, candidate{})
	copy(rt.candidates[at+1:], rt.candidates[at:])
	rt.candidates[at] = c
	for _, t := range c.spec.Tokens() {
		rt.byToken[t] = at
	}
}
