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

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Formatter converts an error into an HTTP response.
type Formatter interface {
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	Status      int
	ContentType string
	Body        any
	Headers     http.Header
}

// ErrorType lets an error declare its HTTP status code.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorCode lets an error expose a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// Write sends a formatted response.
func Write(w http.ResponseWriter, resp Response) error {
	for k, vals := range resp.Headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)

	return json.NewEncoder(w).Encode(resp.Body)
}

// WithStatus wraps an error with an explicit HTTP status code.
// A nil error becomes the status text.
func WithStatus(err error, status int) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// StatusOf returns the status declared by err, or 500.
func StatusOf(err error) int {
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}
