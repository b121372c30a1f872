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

package vdispatch

import (
	"fmt"
	"net/http"
	"strings"

	"rivaas.dev/vdispatch/version"
)

// serveVersion applies lifecycle policy for token, then runs h.
func (r *Router) serveVersion(c *Context, token string, h HandlerFunc) {
	ctx := c.Request.Context()
	route := c.Route()
	lc := r.lifecycles[token]
	header := c.Response.Header()

	if r.versionHeader && token != "" {
		header.Set("X-API-Version", token)
	}

	if r.enforceSunset && lc.IsSunset(r.now()) {
		setSunsetHeaders(header, lc)
		r.observer.RecordSunsetRejection(ctx, token, route)
		r.observer.RecordResolution(ctx, string(r.cfg.Type), OutcomeSunset, token, route)
		r.annotateUnresolved(c, OutcomeSunset)
		c.Logger().Info("request for sunset version refused", "version", token)
		c.Fail(fmt.Errorf("%w: version %s", ErrVersionSunset, token))

		return
	}

	if lc != nil && lc.Deprecated {
		r.setDeprecationHeaders(header, token, lc)
		r.observer.RecordDeprecatedUse(ctx, token, route)
	}

	r.observer.RecordResolution(ctx, string(r.cfg.Type), OutcomeSelected, token, route)
	r.annotateResolved(c, token)
	c.Logger().Debug("version resolved", "version", token, "strategy", string(r.cfg.Type))

	h(c)
}

// setDeprecationHeaders follows RFC 8594 (Sunset) and the Deprecation
// header draft.
func (r *Router) setDeprecationHeaders(h http.Header, token string, lc *version.Lifecycle) {
	h.Set("Deprecation", "true")
	if !lc.SunsetDate.IsZero() {
		h.Set("Sunset", lc.SunsetDate.UTC().Format(http.TimeFormat))
	}
	if lc.MigrationURL != "" {
		link := fmt.Sprintf(`<%s>; rel="deprecation"`, lc.MigrationURL)
		if !lc.SunsetDate.IsZero() {
			link += fmt.Sprintf(`, <%s>; rel="sunset"`, lc.MigrationURL)
		}
		h.Set("Link", link)
	}
	if r.warning299 {
		h.Set("Warning", warning299(token, lc))
	}
}

func setSunsetHeaders(h http.Header, lc *version.Lifecycle) {
	h.Set("Sunset", lc.SunsetDate.UTC().Format(http.TimeFormat))
	if lc.MigrationURL != "" {
		h.Set("Link", fmt.Sprintf(`<%s>; rel="sunset"`, lc.MigrationURL))
	}
}

func warning299(token string, lc *version.Lifecycle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "API version %s is deprecated", token)
	if !lc.SunsetDate.IsZero() {
		fmt.Fprintf(&b, " and will be removed on %s", lc.SunsetDate.UTC().Format("2006-01-02"))
	}
	if lc.Successor != "" {
		fmt.Fprintf(&b, "; migrate to version %s", lc.Successor)
	}
	b.WriteString(".")

	return fmt.Sprintf("299 - %q", b.String())
}
