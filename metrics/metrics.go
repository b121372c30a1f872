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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider names the exporter backing a Recorder.
type Provider string

const (
	// PrometheusProvider exposes a scrape handler (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes to an OTLP HTTP endpoint.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints to stdout, for development.
	StdoutProvider Provider = "stdout"
	// ReaderProvider uses a caller supplied SDK reader.
	ReaderProvider Provider = "reader"
)

// Instrument names.
const (
	ResolutionsName      = "vdispatch.resolutions"
	DeprecatedUseName    = "vdispatch.deprecated_use"
	SunsetRejectionsName = "vdispatch.sunset_rejections"
)

const meterName = "rivaas.dev/vdispatch"

// ErrNoHandler is returned by Handler when the provider is not Prometheus.
var ErrNoHandler = errors.New("metrics: scrape handler is only available with the prometheus provider")

// Recorder records dispatcher metrics.
// Recorder is safe for concurrent use.
type Recorder struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	exportInterval time.Duration
	reader         sdkmetric.Reader
	logger         *slog.Logger

	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	handler       http.Handler
	common        []attribute.KeyValue

	resolutions      metric.Int64Counter
	deprecatedUse    metric.Int64Counter
	sunsetRejections metric.Int64Counter

	shutdown atomic.Bool
}

// New returns a Recorder with its provider and instruments initialized.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:       PrometheusProvider,
		serviceName:    "vdispatch",
		exportInterval: 30 * time.Second,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}

	r.common = []attribute.KeyValue{attribute.String("service.name", r.serviceName)}
	if r.serviceVersion != "" {
		r.common = append(r.common, attribute.String("service.version", r.serviceVersion))
	}

	if err := r.initializeProvider(); err != nil {
		return nil, err
	}
	if err := r.initializeInstruments(); err != nil {
		return nil, err
	}
	r.logger.Debug("metrics recorder initialized", "provider", string(r.provider))

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics: failed to create recorder: %v", err))
	}

	return r
}

func (r *Recorder) validate() error {
	if r.serviceName == "" {
		return errors.New("metrics: service name cannot be empty")
	}
	if r.exportInterval <= 0 {
		return fmt.Errorf("metrics: export interval must be positive, got %s", r.exportInterval)
	}
	if r.provider == ReaderProvider && r.reader == nil {
		return errors.New("metrics: reader cannot be nil")
	}

	return nil
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.handler == nil {
		return nil, ErrNoHandler
	}

	return r.handler, nil
}

// ForceFlush exports pending data. It is a no-op after Shutdown.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.shutdown.Load() {
		return nil
	}

	return r.meterProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the meter provider. Only the first call has an
// effect.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	if err := r.meterProvider.ForceFlush(ctx); err != nil {
		r.logger.Warn("metrics flush failed", "error", err)
	}
	if err := r.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}
