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

package vdispatch_test

import (
	"cmp"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/vdispatch"
	"rivaas.dev/vdispatch/problem"
	"rivaas.dev/vdispatch/strategy"
	"rivaas.dev/vdispatch/version"
)

// compareVersions orders dotted numeric versions.
func compareVersions(a, b string) int {
	ap, bp := strings.Split(a, "."), strings.Split(b, ".")
	for i := range max(len(ap), len(bp)) {
		var x, y int
		if i < len(ap) {
			x, _ = strconv.Atoi(ap[i])
		}
		if i < len(bp) {
			y, _ = strconv.Atoi(bp[i])
		}
		if x != y {
			return cmp.Compare(x, y)
		}
	}

	return 0
}

// newestFirst reads a comma separated Accept-Version header and ranks the
// newest version first.
func newestFirst(req *http.Request) (version.Result, error) {
	raw := req.Header.Get("Accept-Version")
	if raw == "" {
		return nil, nil
	}

	var tokens []string
	for t := range strings.SplitSeq(raw, ",") {
		tokens = append(tokens, strings.TrimSpace(t))
	}
	slices.SortFunc(tokens, func(a, b string) int { return compareVersions(b, a) })

	return version.Many(tokens...), nil
}

// respond writes name and counts executions.
func respond(name string, runs *atomic.Int32) vdispatch.HandlerFunc {
	return func(c *vdispatch.Context) {
		if runs != nil {
			runs.Add(1)
		}
		c.String(http.StatusOK, "%s|%s", name, c.Version())
	}
}

func serve(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func customRouter(t *testing.T, extractor version.Extractor, opts ...vdispatch.Option) *vdispatch.Router {
	t.Helper()

	r, err := vdispatch.New(append([]vdispatch.Option{
		vdispatch.WithVersioning(strategy.Config{Type: strategy.Custom, Extractor: extractor}),
	}, opts...)...)
	require.NoError(t, err)

	return r
}

func TestCustomVersionSelection(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	r := customRouter(t, newestFirst)
	r.GET("/users", version.MustOf("1.0.0"), respond("v1", &runs))
	r.GET("/users", version.MustOf("2.0.0"), respond("v2", &runs))
	r.GET("/users", version.MustOf("2.1.0"), respond("v21", &runs))

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "newest of three", requested: "1.0.0,2.0.0,2.1.0", want: "v21|2.1.0"},
		{name: "newest of two", requested: "1.0.0,2.0.0", want: "v2|2.0.0"},
		{name: "falls back past unknown", requested: "1.0.0,3.0.0", want: "v1|1.0.0"},
		{name: "single", requested: "2.0.0", want: "v2|2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, r, http.MethodGet, "/users", http.Header{"Accept-Version": {tt.requested}})
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}

	t.Run("unknown version", func(t *testing.T) {
		t.Parallel()

		w := serve(t, r, http.MethodGet, "/users", http.Header{"Accept-Version": {"99.0.0"}})
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeProblem(t, w)
		assert.Equal(t, "version-not-found", body["code"])
		assert.EqualValues(t, http.StatusNotFound, body["status"])
		assert.Equal(t, "/users", body["instance"])
	})
}

func TestCustomRunsExactlyOneHandler(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	r := customRouter(t, newestFirst)
	r.GET("/items", version.MustOf("1.0.0", "1.1.0"), respond("legacy", &runs))
	r.GET("/items", version.MustOf("2.0.0"), respond("current", &runs))
	r.GET("/items", version.Neutral, respond("any", &runs))

	for _, requested := range []string{"1.1.0", "2.0.0", "1.0.0,2.0.0", "7.0.0", ""} {
		runs.Store(0)
		w := serve(t, r, http.MethodGet, "/items", http.Header{"Accept-Version": {requested}})
		require.Equal(t, http.StatusOK, w.Code, requested)
		assert.Equal(t, int32(1), runs.Load(), "requested %q", requested)
	}
}

func TestCustomNeutralRanksLast(t *testing.T) {
	t.Parallel()

	r := customRouter(t, newestFirst)
	// Registered before the token handler; still consulted last.
	r.GET("/status", version.Neutral, respond("neutral", nil))
	r.GET("/status", version.MustOf("1"), respond("v1", nil))

	tests := []struct {
		requested string
		want      string
	}{
		{requested: "1", want: "v1|1"},
		{requested: "5,1", want: "v1|1"},
		{requested: "5", want: "neutral|"},
		{requested: "", want: "neutral|"},
	}
	for _, tt := range tests {
		w := serve(t, r, http.MethodGet, "/status", http.Header{"Accept-Version": {tt.requested}})
		require.Equal(t, http.StatusOK, w.Code, tt.requested)
		assert.Equal(t, tt.want, w.Body.String(), tt.requested)
	}

	assert.Equal(t, []vdispatch.RouteInfo{
		{Method: http.MethodGet, Path: "/status", Versions: []string{"1", "neutral"}},
	}, r.Routes())
}

func TestCustomEmptyResultWithoutNeutral(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	r := customRouter(t, newestFirst)
	r.GET("/users", version.MustOf("1"), respond("v1", &runs))

	w := serve(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, runs.Load())
}

func TestCustomExtractorErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	errBroken := errors.New("version header is garbled")
	r := customRouter(t, func(req *http.Request) (version.Result, error) {
		calls.Add(1)
		switch req.Header.Get("Accept-Version") {
		case "bad":
			return nil, problem.WithStatus(errBroken, http.StatusBadRequest)
		case "boom":
			return nil, errBroken
		}

		return version.One(req.Header.Get("Accept-Version")), nil
	})
	r.GET("/users", version.MustOf("1"), respond("v1", nil))
	r.GET("/users", version.MustOf("2"), respond("v2", nil))
	r.GET("/users", version.MustOf("3"), respond("v3", nil))

	w := serve(t, r, http.MethodGet, "/users", http.Header{"Accept-Version": {"boom"}})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errBroken.Error(), decodeProblem(t, w)["detail"])

	w = serve(t, r, http.MethodGet, "/users", http.Header{"Accept-Version": {"bad"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	calls.Store(0)
	w = serve(t, r, http.MethodGet, "/users", http.Header{"Accept-Version": {"3"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), calls.Load(), "the extractor runs once per request")
}

func TestHeaderStrategy(t *testing.T) {
	t.Parallel()

	r := vdispatch.MustNew(vdispatch.WithVersioning(strategy.Config{
		Type:    strategy.Header,
		Header:  "x-api-version",
		Default: []string{"1"},
	}))
	r.GET("/users", version.Spec{}, respond("default", nil))
	r.GET("/users", version.MustOf("2", "3"), respond("v2", nil))
	r.GET("/ping", version.Neutral, respond("ping", nil))

	tests := []struct {
		name   string
		path   string
		header string
		status int
		want   string
	}{
		{name: "explicit", path: "/users", header: "3", status: http.StatusOK, want: "v2|3"},
		{name: "trimmed", path: "/users", header: " 2 ", status: http.StatusOK, want: "v2|2"},
		{name: "default", path: "/users", header: "", status: http.StatusOK, want: "default|1"},
		{name: "unknown", path: "/users", header: "9", status: http.StatusNotFound},
		{name: "neutral without header", path: "/ping", header: "", status: http.StatusOK, want: "ping|"},
		{name: "neutral with header", path: "/ping", header: "9", status: http.StatusOK, want: "ping|9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, r, http.MethodGet, tt.path, http.Header{"X-Api-Version": {tt.header}})
			require.Equal(t, tt.status, w.Code)
			if tt.want != "" {
				assert.Equal(t, tt.want, w.Body.String())
			}
		})
	}
}

func TestMediaTypeStrategy(t *testing.T) {
	t.Parallel()

	r := vdispatch.MustNew(vdispatch.WithVersioning(strategy.Config{Type: strategy.MediaType, Key: "v="}))
	r.GET("/users", version.MustOf("1"), respond("v1", nil))
	r.GET("/users", version.MustOf("2"), respond("v2", nil))
	r.GET("/users", version.Neutral, respond("any", nil))

	tests := []struct {
		accept string
		want   string
	}{
		{accept: "application/json;v=2", want: "v2|2"},
		{accept: `text/html, application/json; v="1"`, want: "v1|1"},
		{accept: "application/json", want: "any|"},
		{accept: "application/json;v=4", want: "any|4"},
	}
	for _, tt := range tests {
		w := serve(t, r, http.MethodGet, "/users", http.Header{"Accept": {tt.accept}})
		require.Equal(t, http.StatusOK, w.Code, tt.accept)
		assert.Equal(t, tt.want, w.Body.String(), tt.accept)
	}
}

func TestURIStrategy(t *testing.T) {
	t.Parallel()

	r := vdispatch.MustNew(vdispatch.WithVersioning(strategy.Config{Type: strategy.URI}))
	r.GET("/users", version.MustOf("1", "2"), respond("old", nil))
	r.GET("/users", version.MustOf("3"), respond("new", nil))
	r.GET("/users", version.Neutral, respond("bare", nil))

	assert.Equal(t, []vdispatch.RouteInfo{
		{Method: http.MethodGet, Path: "/v1/users", Versions: []string{"1"}},
		{Method: http.MethodGet, Path: "/v2/users", Versions: []string{"2"}},
		{Method: http.MethodGet, Path: "/v3/users", Versions: []string{"3"}},
		{Method: http.MethodGet, Path: "/users", Versions: []string{"neutral"}},
	}, r.Routes())

	for path, want := range map[string]string{
		"/v1/users": "old|1",
		"/v2/users": "old|2",
		"/v3/users": "new|3",
		"/users":    "bare|",
	} {
		w := serve(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, want, w.Body.String(), path)
	}

	w := serve(t, r, http.MethodGet, "/v4/users", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route-not-found", decodeProblem(t, w)["code"])
}

func TestRegistrationErrors(t *testing.T) {
	t.Parallel()

	r := customRouter(t, newestFirst)
	require.NoError(t, r.Handle(http.MethodGet, "/users", version.MustOf("1", "2"), respond("a", nil)))
	require.NoError(t, r.Handle(http.MethodGet, "/users", version.Neutral, respond("n", nil)))
	require.NoError(t, r.Handle(http.MethodPost, "/users", version.MustOf("1"), respond("p", nil)))

	err := r.Handle(http.MethodGet, "/users", version.MustOf("2", "3"), respond("b", nil))
	require.ErrorIs(t, err, vdispatch.ErrAmbiguousVersion)
	assert.Contains(t, err.Error(), `"2"`)

	err = r.Handle(http.MethodGet, "/users", version.Neutral, respond("n2", nil))
	require.ErrorIs(t, err, vdispatch.ErrAmbiguousVersion)

	assert.Panics(t, func() { r.GET("/users", version.MustOf("1"), respond("c", nil)) })

	require.ErrorIs(t, r.Handle(http.MethodGet, "/users", version.MustOf("9"), nil), vdispatch.ErrNilHandler)
	require.ErrorIs(t, r.Handle("", "/users", version.MustOf("9"), respond("x", nil)), vdispatch.ErrInvalidRoute)
	require.ErrorIs(t, r.Handle(http.MethodGet, "users", version.MustOf("9"), respond("x", nil)), vdispatch.ErrInvalidRoute)

	// Failed registrations leave the table untouched.
	assert.Equal(t, []vdispatch.RouteInfo{
		{Method: http.MethodGet, Path: "/users", Versions: []string{"1,2", "neutral"}},
		{Method: http.MethodPost, Path: "/users", Versions: []string{"1"}},
	}, r.Routes())
}

func TestRoutesFrozenAfterServe(t *testing.T) {
	t.Parallel()

	r := customRouter(t, newestFirst)
	r.GET("/users", version.MustOf("1"), respond("v1", nil))
	serve(t, r, http.MethodGet, "/users", nil)

	err := r.Handle(http.MethodGet, "/users", version.MustOf("2"), respond("v2", nil))
	require.ErrorIs(t, err, vdispatch.ErrRoutesFrozen)
	assert.Panics(t, func() { r.Use(func(c *vdispatch.Context) { c.Next() }) })
}

func TestNewRejectsInvalidStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  strategy.Config
		want error
	}{
		{name: "custom without extractor", cfg: strategy.Config{Type: strategy.Custom}, want: strategy.ErrNilExtractor},
		{name: "header without name", cfg: strategy.Config{Type: strategy.Header}, want: strategy.ErrEmptyHeaderName},
		{name: "media type without key", cfg: strategy.Config{Type: strategy.MediaType}, want: strategy.ErrEmptyMediaTypeKey},
		{name: "unknown", cfg: strategy.Config{Type: "cookie"}, want: strategy.ErrUnsupportedStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := vdispatch.New(vdispatch.WithVersioning(tt.cfg))
			require.ErrorIs(t, err, tt.want)
			assert.Panics(t, func() { vdispatch.MustNew(vdispatch.WithVersioning(tt.cfg)) })
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var order []string
	r := vdispatch.MustNew()
	r.Use(
		func(c *vdispatch.Context) {
			order = append(order, "outer:before")
			c.Next()
			order = append(order, "outer:after:"+c.Version())
		},
		func(c *vdispatch.Context) {
			if c.Request.Header.Get("X-Block") != "" {
				c.Fail(problem.WithStatus(nil, http.StatusForbidden))
				return
			}
			c.Next()
		},
	)
	r.GET("/users", version.MustOf("1"), func(c *vdispatch.Context) {
		order = append(order, "handler")
		c.String(http.StatusOK, "ok")
	})

	w := serve(t, r, http.MethodGet, "/users", http.Header{"X-Api-Version": {"1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"outer:before", "handler", "outer:after:1"}, order)

	order = nil
	w = serve(t, r, http.MethodGet, "/users", http.Header{"X-Api-Version": {"1"}, "X-Block": {"1"}})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"outer:before", "outer:after:"}, order)
}

func TestContextJSON(t *testing.T) {
	t.Parallel()

	r := vdispatch.MustNew()
	r.POST("/users", version.Neutral, func(c *vdispatch.Context) {
		assert.Equal(t, "POST /users", c.Route())
		assert.NotNil(t, c.Logger())
		assert.False(t, c.Written())
		require.NoError(t, c.JSON(http.StatusCreated, map[string]string{"id": "42"}))
		assert.Equal(t, http.StatusCreated, c.Status())
	})

	w := serve(t, r, http.MethodPost, "/users", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"42"}`, w.Body.String())
}
