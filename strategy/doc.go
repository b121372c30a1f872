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

// Package strategy turns a handler's version spec and the application's
// versioning configuration into a filter deciding, per request, whether the
// handler runs.
//
// Four strategies are supported:
//
//   - [Custom]: an application-supplied [version.Extractor] returns tokens in
//     client-priority order; filters take part in the two-pass resolution of
//     package resolver.
//   - [Header]: the version is read from a request header, with an optional
//     default when the header is absent.
//   - [MediaType]: the version is a parameter of the Accept header, as in
//     "Accept: application/json;v=2".
//   - [URI]: the version is a path prefix such as "/v2/users"; routes are
//     registered once per token so the filter always runs.
//
// Configuration errors are reported when a filter is built, never per
// request:
//
//	cfg := strategy.Config{Type: strategy.Header, Header: "X-API-Version"}
//	f, err := strategy.New(version.MustOf("2"), cfg)
package strategy
