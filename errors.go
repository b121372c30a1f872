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
	"errors"
	"net/http"
)

// Registration errors.
var (
	// ErrAmbiguousVersion is returned when two handlers on the same method
	// and path could both serve a version.
	ErrAmbiguousVersion = errors.New("vdispatch: ambiguous version registration")

	// ErrRoutesFrozen is returned when registering after the router started
	// serving.
	ErrRoutesFrozen = errors.New("vdispatch: routes cannot be registered after serving started")

	// ErrNilHandler is returned for a nil handler.
	ErrNilHandler = errors.New("vdispatch: handler cannot be nil")

	// ErrInvalidRoute is returned for an empty method or a path not starting
	// with "/".
	ErrInvalidRoute = errors.New("vdispatch: invalid route")
)

// Request errors, rendered as problem details.
var (
	// ErrRouteNotFound means nothing is registered on the method and path.
	ErrRouteNotFound error = &statusError{
		msg:    "no route matches the request",
		code:   "route-not-found",
		status: http.StatusNotFound,
	}

	// ErrNoMatchingVersion means handlers exist on the route but none serves
	// the requested version.
	ErrNoMatchingVersion error = &statusError{
		msg:    "no handler matches the requested version",
		code:   "version-not-found",
		status: http.StatusNotFound,
	}

	// ErrVersionSunset means the selected version is past its sunset date.
	ErrVersionSunset error = &statusError{
		msg:    "the requested version has been sunset",
		code:   "version-sunset",
		status: http.StatusGone,
	}
)

type statusError struct {
	msg    string
	code   string
	status int
}

func (e *statusError) Error() string {
	return e.msg
}

func (e *statusError) Code() string {
	return e.code
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
