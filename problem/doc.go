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

// Package problem renders errors as HTTP responses.
//
// The default formatter produces RFC 9457 Problem Details
// ("application/problem+json"). Errors control the outcome through optional
// interfaces:
//
//   - [ErrorType]: HTTPStatus() int selects the status code
//   - [ErrorCode]: Code() string becomes the "code" extension and problem type
//
// Example:
//
//	f := problem.NewRFC9457("https://api.example.com/problems")
//	problem.Write(w, f.Format(req, problem.WithStatus(err, http.StatusNotFound)))
package problem
