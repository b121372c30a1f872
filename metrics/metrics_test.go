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

//go:build !integration

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestRecorder(t *testing.T, opts ...Option) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	rec, err := New(append([]Option{WithReader(reader)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })

	return rec, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s should be an int64 sum", name)

			return sum.DataPoints
		}
	}

	return nil
}

func attr(t *testing.T, set attribute.Set, key string) string {
	t.Helper()

	v, ok := set.Value(attribute.Key(key))
	require.True(t, ok, "missing attribute %s", key)

	return v.AsString()
}

func TestRecordResolution(t *testing.T) {
	t.Parallel()

	rec, reader := newTestRecorder(t, WithServiceName("orders"), WithServiceVersion("1.4.0"))
	ctx := context.Background()

	rec.RecordResolution(ctx, "custom", "selected", "2.1.0", "GET /users")
	rec.RecordResolution(ctx, "custom", "selected", "2.1.0", "GET /users")
	rec.RecordResolution(ctx, "custom", "not_found", "", "GET /users")

	points := collectSum(t, reader, ResolutionsName)
	require.Len(t, points, 2)

	byOutcome := map[string]metricdata.DataPoint[int64]{}
	for _, p := range points {
		byOutcome[attr(t, p.Attributes, "outcome")] = p
	}

	selected := byOutcome["selected"]
	assert.Equal(t, int64(2), selected.Value)
	assert.Equal(t, "2.1.0", attr(t, selected.Attributes, "version"))
	assert.Equal(t, "custom", attr(t, selected.Attributes, "strategy"))
	assert.Equal(t, "GET /users", attr(t, selected.Attributes, "route"))
	assert.Equal(t, "orders", attr(t, selected.Attributes, "service.name"))
	assert.Equal(t, "1.4.0", attr(t, selected.Attributes, "service.version"))

	assert.Equal(t, int64(1), byOutcome["not_found"].Value)
}

func TestRecordLifecycleCounters(t *testing.T) {
	t.Parallel()

	rec, reader := newTestRecorder(t)
	ctx := context.Background()

	rec.RecordDeprecatedUse(ctx, "1", "GET /users")
	rec.RecordSunsetRejection(ctx, "0", "GET /users")
	rec.RecordSunsetRejection(ctx, "0", "GET /users")

	deprecated := collectSum(t, reader, DeprecatedUseName)
	require.Len(t, deprecated, 1)
	assert.Equal(t, int64(1), deprecated[0].Value)
	assert.Equal(t, "vdispatch", attr(t, deprecated[0].Attributes, "service.name"))

	rejected := collectSum(t, reader, SunsetRejectionsName)
	require.Len(t, rejected, 1)
	assert.Equal(t, int64(2), rejected[0].Value)
	assert.Equal(t, "0", attr(t, rejected[0].Attributes, "version"))
}

func TestRecordConcurrent(t *testing.T) {
	t.Parallel()

	rec, reader := newTestRecorder(t)
	const workers, perWorker = 8, 50

	done := make(chan struct{})
	for range workers {
		go func() {
			defer func() { done <- struct{}{} }()
			for range perWorker {
				rec.RecordResolution(context.Background(), "header", "selected", "1", "GET /")
			}
		}()
	}
	for range workers {
		<-done
	}

	points := collectSum(t, reader, ResolutionsName)
	require.Len(t, points, 1)
	assert.Equal(t, int64(workers*perWorker), points[0].Value)
}

func TestPrometheusHandler(t *testing.T) {
	t.Parallel()

	rec, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })
	assert.Equal(t, PrometheusProvider, rec.Provider())

	rec.RecordResolution(context.Background(), "uri", "selected", "2", "GET /v2/users")

	h, err := rec.Handler()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vdispatch_resolutions")
	assert.Contains(t, string(body), `route="GET /v2/users"`)
}

func TestHandlerUnavailable(t *testing.T) {
	t.Parallel()

	rec, _ := newTestRecorder(t)
	_, err := rec.Handler()
	require.ErrorIs(t, err, ErrNoHandler)
}

func TestStdoutProvider(t *testing.T) {
	t.Parallel()

	rec, err := New(WithStdout(), WithExportInterval(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StdoutProvider, rec.Provider())
	require.NoError(t, rec.Shutdown(context.Background()))
}

func TestShutdownIdempotent(t *testing.T) {
	t.Parallel()

	rec, _ := newTestRecorder(t)
	require.NoError(t, rec.Shutdown(context.Background()))
	require.NoError(t, rec.Shutdown(context.Background()))
	require.NoError(t, rec.ForceFlush(context.Background()))
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "empty service name", opts: []Option{WithServiceName("")}},
		{name: "zero interval", opts: []Option{WithStdout(), WithExportInterval(0)}},
		{name: "nil reader", opts: []Option{WithReader(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.Panics(t, func() { MustNew(tt.opts...) })
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		endpoint string
		insecure bool
	}{
		{raw: "http://collector:4318", endpoint: "collector:4318", insecure: true},
		{raw: "https://collector:4318/v1/metrics", endpoint: "collector:4318"},
		{raw: "collector:4318", endpoint: "collector:4318"},
	}

	for _, tt := range tests {
		endpoint, insecure := splitEndpoint(tt.raw)
		assert.Equal(t, tt.endpoint, endpoint, tt.raw)
		assert.Equal(t, tt.insecure, insecure, tt.raw)
	}
}

func TestOTLPProvider(t *testing.T) {
	t.Parallel()

	rec, err := New(WithOTLP("http://127.0.0.1:4318"), WithExportInterval(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, OTLPProvider, rec.Provider())
}
