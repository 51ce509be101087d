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
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildChunkID(t *testing.T) {
	got := BuildChunkID("0000320193-24-000123", "ITEM 1A", 3)
	assert.Equal(t, "0000320193-24-000123_ITEM1A_0003", got)
}

func TestContextPrefix(t *testing.T) {
	filingDate := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	got := ContextPrefix("AAPL", Form10K, filingDate, "ITEM 1A")
	assert.Equal(t, "Company: AAPL | Filing: 10-K 2024-11-01 | Section: ITEM 1A", got)
}
