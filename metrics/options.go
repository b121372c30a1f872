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

package metrics

import (
	"log/slog"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithPrometheus selects the Prometheus exporter. This is the default.
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
	}
}

// WithOTLP pushes metrics to an OTLP HTTP endpoint such as
// "http://collector:4318". An empty endpoint uses the exporter's
// environment based defaults.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.otlpEndpoint = endpoint
	}
}

// WithStdout prints metrics to stdout.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
	}
}

// WithReader records into the given SDK reader, typically a
// sdkmetric.NewManualReader in tests.
func WithReader(reader sdkmetric.Reader) Option {
	return func(r *Recorder) {
		r.provider = ReaderProvider
		r.reader = reader
	}
}

// WithExportInterval sets the push interval for OTLP and stdout.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithServiceName sets the service.name attribute.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service.version attribute.
func WithServiceVersion(v string) Option {
	return func(r *Recorder) {
		r.serviceVersion = v
	}
}

// WithLogger sets the logger for operational events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}
