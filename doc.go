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

// Package vdispatch dispatches HTTP requests to the handler registered for
// the API version the client asks for.
//
// Several handlers may share a method and path, each declaring the versions
// it serves with a [version.Spec]. For every request exactly one of them
// runs, or none and the client gets a 404 problem details response.
//
// # Strategies
//
// The versioning strategy is chosen once for the router:
//
//   - header: the version is read from a request header
//   - media-type: the version is a parameter of the Accept header
//     ("application/json;v=2")
//   - uri: handlers are registered under /v{token}/path
//   - custom: an application extractor returns the requested versions in
//     preference order, and the handler matching the most preferred one
//     runs
//
// The custom strategy needs two passes over the candidates of a route.
// In the first none runs; each records the best token it can serve. The
// router then selects the candidate the client ranked highest and runs it
// in the second pass. [CreateFilter], [SelectBestCandidate],
// [SetExecutionPhase] and [HasPendingCandidates] expose the same protocol
// to other dispatchers.
//
// # Example
//
//	r := vdispatch.MustNew(vdispatch.WithVersioning(strategy.Config{
//	    Type:      strategy.Custom,
//	    Extractor: func(req *http.Request) (version.Result, error) {
//	        return version.Many(strings.Split(req.Header.Get("Accept-Version"), ",")...), nil
//	    },
//	}))
//	r.GET("/users", version.MustOf("1"), listUsersV1)
//	r.GET("/users", version.MustOf("2"), listUsersV2)
//	r.GET("/health", version.Neutral, health)
//
//	http.ListenAndServe(":8080", r)
//
// # Lifecycle
//
// Versions may be marked deprecated with a sunset date. Responses from a
// deprecated version carry Deprecation, Sunset and Link headers, and with
// [WithSunsetEnforcement] requests past the sunset date get 410 Gone.
package vdispatch
