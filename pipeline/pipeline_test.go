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
// IngestFiling sequences calls against *store.Store/*pgxpool.Pool directly
// and is exercised against a live database elsewhere; countWords is the
// only pool-independent logic in this package.
package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, countWords(""))
	assert.Equal(t, 0, countWords("   \n\t  "))
	assert.Equal(t, 3, countWords("one two three"))
	assert.Equal(t, 3, countWords("  one\ttwo\nthree  "))
	assert.Equal(t, 1, countWords("word"))
}
