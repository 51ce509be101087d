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
package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	c.Set("key", []byte("value"))

	v, ok := c.Get("key")
	assert.False(t, ok)
	assert.Nil(t, v)

	c.Invalidate("key") // must not panic
}

func TestBadgerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenBadger(dir)
	require.NoError(t, err)
	defer b.Close()

	var c Cache = b

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("accession-1", []byte("cached markdown"))
	v, ok := c.Get("accession-1")
	require.True(t, ok)
	assert.Equal(t, "cached markdown", string(v))

	c.Invalidate("accession-1")
	_, ok = c.Get("accession-1")
	assert.False(t, ok)
}
