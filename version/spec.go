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

package version

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

type specKind uint8

const (
	kindUnversioned specKind = iota
	kindNeutral
	kindTokens
)

// Spec is the version requirement attached to a handler.
//
// The zero value is an unversioned spec: it has not been given any version
// and the dispatcher decides what it means (usually the default version).
// Specs are immutable and safe to share between goroutines.
type Spec struct {
	kind   specKind
	tokens []string            // registration order, deduplicated
	set    map[string]struct{} // nil for single-token specs
}

// Neutral is served regardless of the requested version, including when the
// request carries no version at all.
var Neutral = Spec{kind: kindNeutral}

// Of builds a spec serving the given tokens.
// A single token matches by equality; several tokens match by membership.
// Duplicate tokens are collapsed.
//
// Example:
//
//	v2, err := version.Of("2.0.0")
//	legacy, err := version.Of("1.0.0", "1.1.0")
func Of(tokens ...string) (Spec, error) {
	if len(tokens) == 0 {
		return Spec{}, ErrNoVersions
	}

	ordered := make([]string, 0, len(tokens))
	for i, t := range tokens {
		if t == "" {
			return Spec{}, fmt.Errorf("%w at index %d", ErrEmptyVersionEntry, i)
		}
		if !slices.Contains(ordered, t) {
			ordered = append(ordered, t)
		}
	}

	s := Spec{kind: kindTokens, tokens: ordered}
	if len(ordered) > 1 {
		s.set = make(map[string]struct{}, len(ordered))
		for _, t := range ordered {
			s.set[t] = struct{}{}
		}
	}

	return s, nil
}

// MustOf is like [Of] but panics on error.
// Intended for package-level declarations and tests.
func MustOf(tokens ...string) Spec {
	s, err := Of(tokens...)
	if err != nil {
		panic("version: " + err.Error())
	}

	return s
}

// OfAny builds a spec from loosely typed values, as they come out of YAML or
// TOML documents where "2" and 2 are different things.
// Numbers and other scalars are converted with their canonical string form.
func OfAny(values ...any) (Spec, error) {
	tokens := make([]string, 0, len(values))
	for i, v := range values {
		t, err := cast.ToStringE(v)
		if err != nil {
			return Spec{}, fmt.Errorf("%w at index %d: %w", ErrInvalidVersionValue, i, err)
		}
		tokens = append(tokens, t)
	}

	return Of(tokens...)
}

// IsZero reports whether the spec is unversioned.
func (s Spec) IsZero() bool {
	return s.kind == kindUnversioned
}

// IsNeutral reports whether the spec is [Neutral].
func (s Spec) IsNeutral() bool {
	return s.kind == kindNeutral
}

// Tokens returns a copy of the tokens served by the spec, in declaration order.
// Neutral and unversioned specs have no tokens.
func (s Spec) Tokens() []string {
	return slices.Clone(s.tokens)
}

// Matches reports whether a requested token satisfies the spec.
// An empty token means the request did not ask for a version; only
// [Neutral] matches it.
func (s Spec) Matches(token string) bool {
	switch s.kind {
	case kindNeutral:
		return true
	case kindTokens:
		if token == "" {
			return false
		}
		if s.set == nil {
			return s.tokens[0] == token
		}
		_, ok := s.set[token]

		return ok
	default:
		return false
	}
}

// Overlaps reports whether a request could be matched by both specs.
// Two neutral specs overlap; a neutral spec does not overlap a token spec
// because token specs always take precedence over it.
func (s Spec) Overlaps(other Spec) bool {
	if s.kind == kindNeutral || other.kind == kindNeutral {
		return s.kind == other.kind
	}
	for _, t := range s.tokens {
		if other.Matches(t) {
			return true
		}
	}

	return false
}

// String returns a human-readable representation of the spec.
func (s Spec) String() string {
	switch s.kind {
	case kindNeutral:
		return "neutral"
	case kindTokens:
		return strings.Join(s.tokens, ",")
	default:
		return "unversioned"
	}
}
