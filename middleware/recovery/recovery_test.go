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

package recovery

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/vdispatch"
	"rivaas.dev/vdispatch/version"
)

func panicking(t *testing.T, mw vdispatch.HandlerFunc) *vdispatch.Router {
	t.Helper()

	r := vdispatch.MustNew()
	r.Use(mw)
	r.GET("/boom", version.Neutral, func(*vdispatch.Context) {
		panic("kaboom")
	})
	r.GET("/ok", version.Neutral, func(c *vdispatch.Context) {
		c.String(http.StatusOK, "fine")
	})

	return r
}

func TestRecoversPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := panicking(t, New(WithLogger(logger), WithStackSize(256)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, float64(http.StatusInternalServerError), body["status"], 0)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "panic recovered", entry["msg"])
	assert.Equal(t, "kaboom", entry["panic"])
	assert.LessOrEqual(t, len(entry["stack"].(string)), 256)
}

func TestPassesThrough(t *testing.T) {
	t.Parallel()

	r := panicking(t, New(WithoutLogging()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}

func TestCustomHandler(t *testing.T) {
	t.Parallel()

	var got any
	r := panicking(t, New(WithoutLogging(), WithHandler(func(c *vdispatch.Context, err any) {
		got = err
		c.String(http.StatusServiceUnavailable, "later")
	})))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "later", w.Body.String())
	assert.Equal(t, "kaboom", got)
}

func TestStackTraceDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := panicking(t, New(WithLogger(logger), WithStackTrace(false)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.NotContains(t, buf.String(), `"stack"`)
}
