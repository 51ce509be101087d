// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache defines the optional key-value caching collaborator (§9):
// an explicit Get/Set/Invalidate interface the core depends on, with a
// no-op default so the core links and runs with caching disabled
// (`features.caching_enabled = false`).
package cache

// Cache is the narrow interface the section segmenter (C4) uses to avoid
// re-fetching a filing's full markdown during a run.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Invalidate(key string)
}

// Noop is the default Cache: every Get misses, every Set/Invalidate is a
// no-op. §9 requires the core to run correctly with this implementation.
type Noop struct{}

func (Noop) Get(string) ([]byte, bool) { return nil, false }
func (Noop) Set(string, []byte)        {}
func (Noop) Invalidate(string)         {}
