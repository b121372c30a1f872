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

import "net/http"

func (r *Router) acquire(w http.ResponseWriter, req *http.Request) *Context {
	c, ok := r.pool.Get().(*Context)
	if !ok {
		panic("vdispatch: pool corruption - context pool returned non-Context type")
	}
	c.reset()
	c.rw.ResponseWriter = w
	c.Response = &c.rw
	c.Request = req

	return c
}

// release returns c to the pool. The versioning state is cleared here so
// that nothing from this request leaks into the next one.
func (r *Router) release(c *Context) {
	c.reset()
	r.pool.Put(c)
}
