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

package strategy

import "errors"

// Static errors for strategy configuration.
var (
	ErrUnsupportedStrategy = errors.New("unsupported versioning strategy")
	ErrEmptyHeaderName     = errors.New("header name cannot be empty")
	ErrEmptyMediaTypeKey   = errors.New("media type parameter key cannot be empty")
	ErrNilExtractor        = errors.New("custom versioning requires an extractor")
	ErrInvalidPrefix       = errors.New("uri prefix cannot contain '/'")
	ErrInvalidDefault      = errors.New("invalid default version")
	ErrUnversionedSpec     = errors.New("spec must be resolved to a version or neutral before building a filter")
)
