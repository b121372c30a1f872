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

package resolver

import "fmt"

// Discovery is the first pass, between BeginDiscovery and Resolve.
type Discovery struct {
	s *State
}

// Selection is the outcome of discovery.
type Selection struct {
	s         *State
	candidate Candidate
}

// BeginDiscovery starts the first pass.
// It is valid on a fresh state or one already lazily put into discovery by
// Offer; it fails once execution has started.
func (s *State) BeginDiscovery() (Discovery, error) {
	switch s.phase {
	case PhaseNone:
		s.phase = PhaseDiscovery
	case PhaseDiscovery:
	default:
		return Discovery{}, fmt.Errorf("%w: discovery after %s", ErrPhaseOrder, s.phase)
	}

	return Discovery{s: s}, nil
}

// Resolve ends discovery and returns the best candidate.
// It returns false when no candidate matched.
func (d Discovery) Resolve() (Selection, bool) {
	if d.s == nil {
		return Selection{}, false
	}
	c, ok := d.s.SelectBest()
	if !ok {
		return Selection{}, false
	}

	return Selection{s: d.s, candidate: c}, true
}

// Candidate returns the selected candidate.
func (sel Selection) Candidate() Candidate {
	return sel.candidate
}

// BeginExecution starts the second pass.
func (sel Selection) BeginExecution() error {
	if sel.s == nil {
		return fmt.Errorf("%w: empty selection", ErrPhaseOrder)
	}

	return sel.s.BeginExecution(sel.candidate.Token)
}
