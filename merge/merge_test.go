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
//
// MergeFiling and the built-in hooks take a *pgxpool.Pool directly and are
// exercised against a live database elsewhere; this file covers only
// Coordinator construction and hook registration, which touch no pool.
package merge

import (
	"context"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersBuiltinHooksInOrder(t *testing.T) {
	c := New(nil, false)
	require.Len(t, c.hooks, 2)
	assert.Equal(t, reflect.ValueOf(validateSectionsNotEmpty).Pointer(), reflect.ValueOf(c.hooks[0]).Pointer())
	assert.Equal(t, reflect.ValueOf(validateNoDuplicateSections).Pointer(), reflect.ValueOf(c.hooks[1]).Pointer())
}

func TestRegisterHookAppends(t *testing.T) {
	c := New(nil, false)
	calls := 0
	c.RegisterHook(func(_ context.Context, _ *pgxpool.Pool, _, _ string) (bool, string, error) {
		calls++
		return true, "", nil
	})
	require.Len(t, c.hooks, 3)

	// Exercise only the hook just registered: the two built-ins query a
	// real pool and would panic against the nil pool used here.
	ok, msg, err := c.hooks[2](context.Background(), nil, "run", "acc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, msg)
	assert.Equal(t, 1, calls)
}
