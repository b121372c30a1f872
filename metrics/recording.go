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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func (r *Recorder) initializeInstruments() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	r.resolutions, err = meter.Int64Counter(ResolutionsName,
		metric.WithDescription("Version resolutions by strategy and outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resolutions counter: %w", err)
	}

	r.deprecatedUse, err = meter.Int64Counter(DeprecatedUseName,
		metric.WithDescription("Requests served by a deprecated version"),
	)
	if err != nil {
		return fmt.Errorf("failed to create deprecated use counter: %w", err)
	}

	r.sunsetRejections, err = meter.Int64Counter(SunsetRejectionsName,
		metric.WithDescription("Requests refused because the version is past its sunset date"),
	)
	if err != nil {
		return fmt.Errorf("failed to create sunset rejections counter: %w", err)
	}

	return nil
}

// RecordResolution counts one dispatched request.
// version is empty when nothing was selected.
func (r *Recorder) RecordResolution(ctx context.Context, strategy, outcome, version, route string) {
	r.resolutions.Add(ctx, 1, metric.WithAttributes(r.attrs(
		attribute.String("strategy", strategy),
		attribute.String("outcome", outcome),
		attribute.String("version", version),
		attribute.String("route", route),
	)...))
}

// RecordDeprecatedUse counts a request served by a deprecated version.
func (r *Recorder) RecordDeprecatedUse(ctx context.Context, version, route string) {
	r.deprecatedUse.Add(ctx, 1, metric.WithAttributes(r.attrs(
		attribute.String("version", version),
		attribute.String("route", route),
	)...))
}

// RecordSunsetRejection counts a request refused after sunset.
func (r *Recorder) RecordSunsetRejection(ctx context.Context, version, route string) {
	r.sunsetRejections.Add(ctx, 1, metric.WithAttributes(r.attrs(
		attribute.String("version", version),
		attribute.String("route", route),
	)...))
}

func (r *Recorder) attrs(kv ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(r.common)+len(kv))
	out = append(out, r.common...)

	return append(out, kv...)
}
