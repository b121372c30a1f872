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

// Package metrics records version resolution outcomes with OpenTelemetry.
//
// A [Recorder] owns a meter provider backed by one exporter: Prometheus
// (default, scraped through [Recorder.Handler]), OTLP over HTTP, stdout, or a
// caller supplied SDK reader. It satisfies the dispatcher's observer
// interface:
//
//	rec := metrics.MustNew(metrics.WithServiceName("orders"))
//	defer rec.Shutdown(context.Background())
//
//	r := vdispatch.MustNew(vdispatch.WithObserver(rec))
//	h, _ := rec.Handler()
//	http.Handle("/metrics", h)
//
// Instruments:
//
//   - vdispatch.resolutions: one per dispatched request, with strategy,
//     outcome, version and route attributes
//   - vdispatch.deprecated_use: requests served by a deprecated version
//   - vdispatch.sunset_rejections: requests refused after a version's sunset
package metrics
