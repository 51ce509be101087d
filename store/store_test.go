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
// Every query method here takes a live *pgxpool.Pool and is exercised
// against a real database elsewhere; this file covers only the
// connection-string plumbing that does not require a reachable server.
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDoesNotConnect(t *testing.T) {
	s := New("postgres://localhost:5432/edgaringest")
	assert.Equal(t, "postgres://localhost:5432/edgaringest", s.DSN)
	assert.Nil(t, s.Pool())
}

func TestConnectRejectsMalformedDSN(t *testing.T) {
	s := New("not-a-valid-dsn://\x00")
	err := s.Connect(context.Background(), 10, 5)
	require.Error(t, err)
}

func TestCloseOnUnconnectedStoreIsSafe(t *testing.T) {
	s := New("postgres://localhost:5432/edgaringest")
	assert.NotPanics(t, func() { s.Close() })
}
