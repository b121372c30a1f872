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

package version

import "time"

// Lifecycle describes where a version stands in its support window.
type Lifecycle struct {
	Deprecated      bool
	DeprecatedSince time.Time
	SunsetDate      time.Time
	MigrationURL    string
	Successor       string
}

// LifecycleOption configures a version's lifecycle.
type LifecycleOption func(*Lifecycle)

// Deprecated marks the version as deprecated as of now.
//
// Example:
//
//	vdispatch.WithLifecycle("1.0.0", version.Deprecated())
func Deprecated() LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Deprecated = true
		if lc.DeprecatedSince.IsZero() {
			lc.DeprecatedSince = time.Now()
		}
	}
}

// DeprecatedSince marks the version as deprecated since a specific date.
func DeprecatedSince(date time.Time) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Deprecated = true
		lc.DeprecatedSince = date
	}
}

// Sunset sets when the version will be removed.
// With sunset enforcement enabled, requests after this date get 410 Gone.
func Sunset(date time.Time) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.SunsetDate = date
	}
}

// MigrationDocs sets the migration guide URL advertised in Link headers.
func MigrationDocs(url string) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.MigrationURL = url
	}
}

// SuccessorVersion names the version clients should move to.
func SuccessorVersion(v string) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Successor = v
	}
}

// ApplyLifecycleOptions builds a Lifecycle from options.
func ApplyLifecycleOptions(opts ...LifecycleOption) *Lifecycle {
	lc := &Lifecycle{}
	for _, opt := range opts {
		opt(lc)
	}

	return lc
}

// IsSunset reports whether the sunset date has passed at now.
func (lc *Lifecycle) IsSunset(now time.Time) bool {
	return lc != nil && !lc.SunsetDate.IsZero() && now.After(lc.SunsetDate)
}
