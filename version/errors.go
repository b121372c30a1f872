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

import "errors"

// Static errors for version construction.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// ErrNoVersions is returned when a spec is built without any token.
	ErrNoVersions = errors.New("at least one version is required")

	// ErrEmptyVersionEntry is returned when a token is empty.
	ErrEmptyVersionEntry = errors.New("version cannot be empty")

	// ErrInvalidVersionValue is returned when a value cannot be coerced to a token.
	ErrInvalidVersionValue = errors.New("version value cannot be converted to a string")
)
