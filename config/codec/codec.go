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
	"fmt"
	"sync"
)

// Type identifies a payload format.
type Type string

// Decoder converts an encoded payload into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

var (
	mu       sync.RWMutex
	decoders = make(map[Type]Decoder)
)

// Register makes a decoder available under name.
// Registering the same name twice replaces the previous decoder.
func Register(name Type, dec Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[name] = dec
}

// Lookup returns the decoder registered under name.
func Lookup(name Type) (Decoder, error) {
	mu.RLock()
	defer mu.RUnlock()

	dec, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}

	return dec, nil
}
