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
package chunker

import (
	"strings"
	"testing"
	"time"

	"github.com/finloom/edgaringest/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraph(words int) string {
	return strings.Repeat("word ", words)
}

func TestChunkMergesSmallParagraphsUpToMax(t *testing.T) {
	cfg := Config{MinTokens: 10, MaxTokens: 50, OverlapTokens: 5, TokensPerWord: 1}
	md := paragraph(20) + "\n\n" + paragraph(20) + "\n\n" + paragraph(20)

	chunks := Chunk("0000320193-24-000123", "ITEM 1A", "AAPL", model.Form10K, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), md, cfg)

	require.GreaterOrEqual(t, len(chunks), 2)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.TokenCount, cfg.MaxTokens+cfg.OverlapTokens)
		assert.Contains(t, c.Text, "word")
		assert.Equal(t, "Company: AAPL | Filing: 10-K 2024-11-01 | Section: ITEM 1A", c.ContextPrefix)
		assert.False(t, c.ContainsTable)
	}
}

func TestChunkIDsAreSequentialPerSection(t *testing.T) {
	cfg := Config{MinTokens: 5, MaxTokens: 15, OverlapTokens: 2, TokensPerWord: 1}
	md := paragraph(10) + "\n\n" + paragraph(10) + "\n\n" + paragraph(10)

	chunks := Chunk("0000320193-24-000123", "ITEM 1", "AAPL", model.Form10K, time.Now(), md, cfg)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, model.BuildChunkID("0000320193-24-000123", "ITEM 1", i), c.ChunkID)
	}
}

func TestChunkOversizeTableIsAtomic(t *testing.T) {
	cfg := Config{MinTokens: 10, MaxTokens: 20, OverlapTokens: 5, TokensPerWord: 1}
	bigTable := "<table>" + paragraph(100) + "</table>"
	md := paragraph(10) + "\n\n" + bigTable + "\n\n" + paragraph(10)

	chunks := Chunk("acc-1", "ITEM 8", "AAPL", model.Form10K, time.Now(), md, cfg)

	var foundTable bool
	for _, c := range chunks {
		if c.ContainsTable {
			foundTable = true
			assert.Contains(t, c.Text, "<table>")
			assert.Greater(t, c.TokenCount, cfg.MaxTokens, "an oversize table must stay intact even past MaxTokens")
		}
	}
	assert.True(t, foundTable)
}

func TestChunkDropsTrailingUndersizeRemainder(t *testing.T) {
	cfg := Config{MinTokens: 50, MaxTokens: 200, OverlapTokens: 10, TokensPerWord: 1}
	md := paragraph(5)

	chunks := Chunk("acc-1", "ITEM 2", "AAPL", model.Form10K, time.Now(), md, cfg)
	assert.Empty(t, chunks, "a lone remainder below MinTokens with no table must not produce a chunk")
}

func TestChunkSingleBlockUnderMaxIsOneChunk(t *testing.T) {
	cfg := Config{MinTokens: 5, MaxTokens: 200, OverlapTokens: 10, TokensPerWord: 1}
	md := paragraph(30)

	chunks := Chunk("acc-1", "ITEM 1", "AAPL", model.Form10K, time.Now(), md, cfg)
	require.Len(t, chunks, 1)
	assert.Equal(t, 30, chunks[0].TokenCount)
}

func TestTokenEstimate(t *testing.T) {
	assert.Equal(t, 13, tokenEstimate("one two three four five six seven eight nine ten", 1.33))
}

func TestSplitBlocksTagsTables(t *testing.T) {
	cfg := Config{TokensPerWord: 1}
	md := "intro text\n\n<table><tr><td>a</td></tr></table>\n\nclosing text"
	blocks := splitBlocks(md, cfg)

	require.Len(t, blocks, 3)
	assert.False(t, blocks[0].isTable)
	assert.True(t, blocks[1].isTable)
	assert.False(t, blocks[2].isTable)
}
