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
	"net/http"

	"github.com/spf13/cast"
)

// Result is the list of tokens requested by a client, most preferred first.
// An empty Result means the request carries no version.
type Result []string

// Extractor pulls the requested versions out of a request.
// Errors are not masked by the caller: they reach the error handler as-is.
type Extractor func(*http.Request) (Result, error)

// One returns a single-token result, or an empty result for "".
func One(token string) Result {
	if token == "" {
		return nil
	}

	return Result{token}
}

// Many returns a result holding the non-empty tokens in order.
func Many(tokens ...string) Result {
	var r Result
	for _, t := range tokens {
		if t != "" {
			r = append(r, t)
		}
	}

	return r
}

// Normalize converts a loosely typed extractor output into a Result.
// It accepts nil, a scalar (string, number, ...) or a slice of scalars.
// A scalar is treated as a one-element list.
func Normalize(v any) (Result, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case Result:
		return Many(val...), nil
	case string:
		return One(val), nil
	case []string:
		return Many(val...), nil
	case []any:
		tokens := make([]string, 0, len(val))
		for i, item := range val {
			t, err := cast.ToStringE(item)
			if err != nil {
				return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidVersionValue, i, err)
			}
			tokens = append(tokens, t)
		}

		return Many(tokens...), nil
	default:
		t, err := cast.ToStringE(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidVersionValue, err)
		}

		return One(t), nil
	}
}

// Empty reports whether the result holds no token.
func (r Result) Empty() bool {
	return len(r) == 0
}

// FirstMatch scans the result in priority order and returns the first token
// the spec accepts along with its index.
func (r Result) FirstMatch(s Spec) (string, int, bool) {
	for i, t := range r {
		if s.Matches(t) {
			return t, i, true
		}
	}

	return "", -1, false
}
