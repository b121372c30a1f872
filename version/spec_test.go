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

//go:build !integration

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	t.Parallel()

	t.Run("single token", func(t *testing.T) {
		t.Parallel()
		s, err := Of("2.0.0")
		require.NoError(t, err)
		assert.Equal(t, []string{"2.0.0"}, s.Tokens())
		assert.False(t, s.IsZero())
		assert.False(t, s.IsNeutral())
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		s, err := Of("1", "2", "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, s.Tokens())
	})

	t.Run("no tokens fails", func(t *testing.T) {
		t.Parallel()
		_, err := Of()
		require.ErrorIs(t, err, ErrNoVersions)
	})

	t.Run("empty token fails", func(t *testing.T) {
		t.Parallel()
		_, err := Of("1", "")
		require.ErrorIs(t, err, ErrEmptyVersionEntry)
		assert.Contains(t, err.Error(), "index 1")
	})

	t.Run("must panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { MustOf() })
	})
}

func TestOfAny(t *testing.T) {
	t.Parallel()

	s, err := OfAny(1, "2.0.0", 3.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2.0.0", "3.5"}, s.Tokens())

	_, err = OfAny(struct{}{})
	require.ErrorIs(t, err, ErrInvalidVersionValue)
}

func TestSpecMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spec  Spec
		token string
		want  bool
	}{
		{"neutral with token", Neutral, "9.9.9", true},
		{"neutral without token", Neutral, "", true},
		{"single exact", MustOf("2.0.0"), "2.0.0", true},
		{"single other", MustOf("2.0.0"), "2.0.1", false},
		{"single is case sensitive", MustOf("v2"), "V2", false},
		{"single without token", MustOf("2.0.0"), "", false},
		{"set member", MustOf("1", "2", "3"), "2", true},
		{"set non member", MustOf("1", "2", "3"), "4", false},
		{"set without token", MustOf("1", "2"), "", false},
		{"unversioned never matches", Spec{}, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.spec.Matches(tt.token))
		})
	}
}

func TestSpecMatchesSetMembership(t *testing.T) {
	t.Parallel()

	members := []string{"1.0.0", "1.1.0", "1.2.0", "2.0.0"}
	s := MustOf(members...)
	candidates := []string{"0.9.0", "1.0.0", "1.1.0", "1.1.1", "1.2.0", "2.0.0", "2.0.0-rc1"}

	for _, c := range candidates {
		assert.Equal(t, contains(members, c), s.Matches(c), "token %q", c)
	}
}

func TestSpecOverlaps(t *testing.T) {
	t.Parallel()

	assert.True(t, MustOf("1", "2").Overlaps(MustOf("2", "3")))
	assert.False(t, MustOf("1").Overlaps(MustOf("2")))
	assert.True(t, Neutral.Overlaps(Neutral))
	assert.False(t, Neutral.Overlaps(MustOf("1")))
	assert.False(t, MustOf("1").Overlaps(Neutral))
}

func TestSpecString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "1,2", MustOf("1", "2").String())
	assert.Equal(t, "unversioned", Spec{}.String())
}

func TestSpecTokensIsCopy(t *testing.T) {
	t.Parallel()

	s := MustOf("1", "2")
	tokens := s.Tokens()
	tokens[0] = "changed"
	assert.True(t, s.Matches("1"))
	assert.Equal(t, []string{"1", "2"}, s.Tokens())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
