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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/vdispatch/config/codec"
)

// Env loads configuration from environment variables sharing a prefix.
//
// With prefix "VDISPATCH_", VDISPATCH_VERSIONING_HEADER=X-API-Version
// becomes versioning.header.
type Env struct {
	prefix  string
	environ func() []string
}

// NewEnv returns an environment source for prefix.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, environ: os.Environ}
}

// Load collects matching variables and decodes them with [codec.Env].
func (e *Env) Load(context.Context) (map[string]any, error) {
	var b strings.Builder
	for _, kv := range e.environ() {
		rest, ok := strings.CutPrefix(kv, e.prefix)
		if !ok {
			continue
		}
		b.WriteString(rest)
		b.WriteByte('\n')
	}

	var values map[string]any
	if err := (codec.Env{}).Decode([]byte(b.String()), &values); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}

	return values, nil
}
