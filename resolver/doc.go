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

// Package resolver selects one handler among several registered for the same
// route when the requested version comes from a custom extractor.
//
// An extractor may return several tokens in client-priority order, and each
// candidate handler can only see whether it matches one of them. Picking the
// first handler that matches would let registration order beat client
// preference, so resolution runs in two passes over the same candidates:
//
//  1. Discovery: every candidate is offered the request. A matching
//     candidate records the token it matched and the token's index in the
//     extraction result. No handler runs.
//  2. Execution: the recorded token with the lowest index is selected, and
//     the candidates are offered the request again. Only the candidate that
//     matches the selected token runs.
//
// The dispatcher drives the passes through a typed flow:
//
//	d, err := state.BeginDiscovery()
//	for _, c := range candidates {
//	    state.Offer(c.spec, result)
//	}
//	sel, ok := d.Resolve()
//	if !ok {
//	    // not found
//	}
//	_ = sel.BeginExecution()
//	for _, c := range candidates {
//	    if m := state.Offer(c.spec, result); m.Decision == resolver.Execute {
//	        c.run()
//	        break
//	    }
//	}
//
// A [State] belongs to exactly one request. It is not safe for concurrent use
// and must never be shared between requests; the dispatcher keeps it on the
// pooled request context and resets it on release.
package resolver
