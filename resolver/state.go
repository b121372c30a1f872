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

import (
	"fmt"
	"net/http"

	"rivaas.dev/vdispatch/version"
)

// Phase is the resolution phase of a request.
type Phase uint8

const (
	// PhaseNone means no custom-versioned candidate has seen the request yet.
	PhaseNone Phase = iota
	// PhaseDiscovery records matches without running handlers.
	PhaseDiscovery
	// PhaseExecution runs the selected candidate only.
	PhaseExecution
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDiscovery:
		return "discovery"
	case PhaseExecution:
		return "execution"
	default:
		return "none"
	}
}

// Decision is what a candidate should do with the request.
type Decision uint8

const (
	// Skip means the candidate does not match, or matched a token other than
	// the selected one.
	Skip Decision = iota
	// Record means the candidate matched during discovery.
	Record
	// Execute means the candidate is the selected one.
	Execute
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Record:
		return "record"
	case Execute:
		return "execute"
	default:
		return "skip"
	}
}

// Candidate is a token recorded during discovery.
// A neutral candidate has an empty Token and ranks after every explicit match.
type Candidate struct {
	Token    string
	Priority int
}

// Neutral reports whether the candidate was recorded by a neutral spec.
func (c Candidate) Neutral() bool {
	return c.Token == ""
}

// Match is the outcome of offering a request to one candidate.
type Match struct {
	Decision Decision
	Token    string
}

// State is the per-request resolution state.
// The zero value is ready to use and means "not yet in custom versioning".
type State struct {
	phase      Phase
	result     version.Result
	extracted  bool
	candidates []Candidate // insertion order == registration order
	best       Candidate
	hasBest    bool
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Extract runs the extractor once per request and memoizes its result.
// Extractor errors are returned unchanged and not memoized.
func (s *State) Extract(req *http.Request, extract version.Extractor) (version.Result, error) {
	if s.extracted {
		return s.result, nil
	}
	r, err := extract(req)
	if err != nil {
		return nil, err
	}
	s.result = r
	s.extracted = true

	return r, nil
}

// Offer evaluates one candidate spec against the extraction result.
//
// The first token of the result the spec accepts is the candidate's match;
// client priority wins over the order of tokens inside the spec. A neutral
// spec matches with priority len(result), after every explicit token.
//
// In discovery a match is recorded and Record returned. In execution Execute
// is returned only when the match equals the selected candidate.
func (s *State) Offer(spec version.Spec, result version.Result) Match {
	if s.phase == PhaseNone {
		s.phase = PhaseDiscovery
	}

	token, priority, ok := matchSpec(spec, result)
	if !ok {
		return Match{Decision: Skip}
	}

	switch s.phase {
	case PhaseDiscovery:
		s.record(token, priority)
		return Match{Decision: Record, Token: token}
	case PhaseExecution:
		if s.hasBest && s.best.Token == token {
			return Match{Decision: Execute, Token: token}
		}
	}

	return Match{Decision: Skip, Token: token}
}

func matchSpec(spec version.Spec, result version.Result) (string, int, bool) {
	if spec.IsNeutral() {
		return "", len(result), true
	}

	return result.FirstMatch(spec)
}

// record keeps the first priority seen for a token.
func (s *State) record(token string, priority int) {
	for _, c := range s.candidates {
		if c.Token == token {
			return
		}
	}
	s.candidates = append(s.candidates, Candidate{Token: token, Priority: priority})
}

// Candidates returns a copy of the recorded candidates in insertion order.
func (s *State) Candidates() []Candidate {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)

	return out
}

// HasPending reports whether discovery recorded at least one candidate and
// execution has not started yet. When false there is nothing to run.
func (s *State) HasPending() bool {
	return s.phase == PhaseDiscovery && len(s.candidates) > 0
}

// SelectBest returns the recorded candidate with the lowest priority index.
// Ties go to the first inserted candidate. It returns false outside of
// discovery or when nothing was recorded.
func (s *State) SelectBest() (Candidate, bool) {
	if s.phase != PhaseDiscovery || len(s.candidates) == 0 {
		return Candidate{}, false
	}

	best := s.candidates[0]
	for _, c := range s.candidates[1:] {
		if c.Priority < best.Priority {
			best = c
		}
	}

	return best, true
}

// BeginExecution switches to execution with token as the selected candidate.
// The empty token selects the neutral candidate.
func (s *State) BeginExecution(token string) error {
	if s.phase != PhaseDiscovery {
		return fmt.Errorf("%w: cannot start execution from %s", ErrPhaseOrder, s.phase)
	}
	for _, c := range s.candidates {
		if c.Token == token {
			s.best = c
			s.hasBest = true
			s.phase = PhaseExecution

			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownCandidate, token)
}

// Best returns the selected candidate once execution has started.
func (s *State) Best() (Candidate, bool) {
	return s.best, s.hasBest
}

// Reset clears the state so it can be reused for another request.
func (s *State) Reset() {
	s.phase = PhaseNone
	s.result = nil
	s.extracted = false
	s.candidates = s.candidates[:0]
	s.best = Candidate{}
	s.hasBest = false
}
