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
// Manager's methods take a *pgxpool.Pool directly and are exercised
// against a live database elsewhere; GenerateRunID and TableName are the
// only pool-independent logic in this package.
package staging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRunIDFormat(t *testing.T) {
	got := GenerateRunID(time.Date(2024, 11, 1, 13, 5, 9, 0, time.UTC))
	assert.Equal(t, "20241101_130509", got)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "facts_staging_20241101_130509", TableName("facts", "20241101_130509"))
	assert.Equal(t, "sections_staging_run1", TableName("sections", "run1"))
}

func TestTablesListsCanonicalDerivedTables(t *testing.T) {
	assert.ElementsMatch(t, []string{"facts", "sections", "chunks"}, Tables)
}
