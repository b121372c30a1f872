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

package codec

import (
	"bytes"
	"fmt"
	"strings"
)

// TypeEnv identifies newline separated KEY=value pairs.
const TypeEnv Type = "env"

func init() {
	Register(TypeEnv, Env{})
}

// Env decodes KEY=value lines into nested maps.
// Keys are lowercased and split on underscores, so VERSIONING_TYPE=header
// becomes {"versioning": {"type": "header"}}. Values are kept as strings.
type Env struct{}

// Decode implements [Decoder]. v must be a *map[string]any.
func (Env) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("codec.Env: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		key, value, found := strings.Cut(string(line), "=")
		if !found {
			continue
		}

		parts := splitKey(key)
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, isMap := current[part].(map[string]any)
			if !isMap {
				// a scalar set by a shorter key is replaced by the nested map
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	*ptr = conf

	return nil
}

func splitKey(key string) []string {
	raw := strings.Split(strings.ToLower(strings.TrimSpace(key)), "_")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}
