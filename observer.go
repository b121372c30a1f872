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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Resolution outcomes reported to the Observer.
const (
	OutcomeSelected = "selected"
	OutcomeNotFound = "not_found"
	OutcomeSunset   = "sunset"
	OutcomeError    = "error"
)

// Observer is notified of every dispatch. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	RecordResolution(ctx context.Context, strategy, outcome, version, route string)
	RecordDeprecatedUse(ctx context.Context, version, route string)
	RecordSunsetRejection(ctx context.Context, version, route string)
}

type nopObserver struct{}

func (nopObserver) RecordResolution(context.Context, string, string, string, string) {}
func (nopObserver) RecordDeprecatedUse(context.Context, string, string)              {}
func (nopObserver) RecordSunsetRejection(context.Context, string, string)            {}

// Span attribute and event names.
const (
	attrVersion  = "api.version"
	attrStrategy = "api.versioning.strategy"
	attrOutcome  = "api.versioning.outcome"

	eventResolved   = "version.resolved"
	eventUnresolved = "version.unresolved"
)

func (r *Router) annotateResolved(c *Context, token string) {
	span := c.Span()
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.String(attrVersion, token))
	span.AddEvent(eventResolved, trace.WithAttributes(
		attribute.String(attrVersion, token),
		attribute.String(attrStrategy, string(r.cfg.Type)),
	))
}

func (r *Router) annotateUnresolved(c *Context, outcome string) {
	span := c.Span()
	if !span.IsRecording() {
		return
	}
	span.AddEvent(eventUnresolved, trace.WithAttributes(
		attribute.String(attrStrategy, string(r.cfg.Type)),
		attribute.String(attrOutcome, outcome),
	))
}
