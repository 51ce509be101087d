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
// Engine's query methods (FindDuplicateMetrics, FindOrphanedFilings, ...)
// take a *pgxpool.Pool directly and are exercised against a live database
// elsewhere; this file covers the pool-independent logic only:
// RemoveDuplicates' dry-run counting and New's tolerance plumbing.
package reconcile

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoresTolerance(t *testing.T) {
	e := New(nil, decimal.NewFromFloat(2.5))
	assert.True(t, e.tolerance.Equal(decimal.NewFromFloat(2.5)))
}

func TestRemoveDuplicatesDryRunCountsWithoutTouchingPool(t *testing.T) {
	e := New(nil, decimal.NewFromInt(1))
	groups := []DuplicateGroup{
		{Ticker: "AAPL", MetricID: "revenue", FiscalYear: 2024, KeeperID: 1, DropIDs: []int64{2, 3}},
		{Ticker: "MSFT", MetricID: "assets", FiscalYear: 2024, KeeperID: 10, DropIDs: []int64{11}},
	}

	n, err := e.RemoveDuplicates(context.Background(), groups, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRemoveDuplicatesDryRunEmptyGroups(t *testing.T) {
	e := New(nil, decimal.NewFromInt(1))
	n, err := e.RemoveDuplicates(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
