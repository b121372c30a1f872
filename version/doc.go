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

// Package version describes which API versions a handler serves and which
// versions a request asks for.
//
// A [Spec] is attached to a handler when it is registered. It is one of:
//
//   - a single token: version.MustOf("2.0.0")
//   - a set of tokens: version.MustOf("1.0.0", "1.1.0")
//   - [Neutral]: served regardless of the requested version
//
// A [Result] is what an [Extractor] pulls out of a request: zero, one or
// many tokens, most preferred first.
//
//	spec := version.MustOf("1.0.0", "2.0.0")
//	spec.Matches("2.0.0") // true
//	spec.Matches("3.0.0") // false
//	version.Neutral.Matches("") // true
//
// Matching is exact and case-sensitive. Lookup structures are built once,
// when the Spec is constructed, so matching on the request path does not
// allocate.
//
// # Lifecycle
//
// Per-version lifecycle (deprecation, sunset, migration docs) is expressed
// with [LifecycleOption] values:
//
//	lc := version.ApplyLifecycleOptions(
//	    version.Deprecated(),
//	    version.Sunset(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)),
//	    version.MigrationDocs("https://docs.example.com/v1-to-v2"),
//	)
package version
