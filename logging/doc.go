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

// Package logging builds the structured [slog.Logger] used across vdispatch.
//
// The dispatcher accepts any *slog.Logger; this package only standardizes
// how one is built: handler type, level, service metadata and redaction of
// sensitive attributes.
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("orders-api"),
//	    logging.WithLevelName("debug"),
//	)
//	r := vdispatch.MustNew(vdispatch.WithLogger(logger))
package logging
