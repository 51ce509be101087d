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

// Package chunker is the semantic chunker (C10): it partitions section
// markdown into token-bounded, table-safe, context-prefixed chunks,
// following the block-split-then-greedy-merge algorithm of §4.10.
package chunker

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/finloom/edgaringest/model"
)

// Config carries the four chunking parameters (§4.10 defaults).
type Config struct {
	MinTokens     int
	MaxTokens     int
	OverlapTokens int
	TokensPerWord float64
}

// DefaultConfig matches §4.10's stated defaults.
func DefaultConfig() Config {
	return Config{MinTokens: 100, MaxTokens: 512, OverlapTokens: 50, TokensPerWord: 1.33}
}

type block struct {
	text    string
	isTable bool
	tokens  int
}

var tableRe = regexp.MustCompile(`(?is)<table.*?</table>`)

func tokenEstimate(text string, tokensPerWord float64) int {
	words := len(strings.Fields(text))
	return int(math.Floor(float64(words) * tokensPerWord))
}

// splitBlocks implements §4.10 step 1: locate table regions, split the
// material between them on blank-line paragraph separators, tagging each
// resulting block is_table or not. Tables are atomic.
func splitBlocks(markdown string, cfg Config) []block {
	var blocks []block

	locs := tableRe.FindAllStringIndex(markdown, -1)
	pos := 0
	for _, loc := range locs {
		before := markdown[pos:loc[0]]
		blocks = append(blocks, paragraphBlocks(before, cfg)...)

		tableText := markdown[loc[0]:loc[1]]
		blocks = append(blocks, block{text: tableText, isTable: true, tokens: tokenEstimate(tableText, cfg.TokensPerWord)})

		pos = loc[1]
	}
	blocks = append(blocks, paragraphBlocks(markdown[pos:], cfg)...)

	return blocks
}

func paragraphBlocks(text string, cfg Config) []block {
	var out []block
	for _, p := range regexp.MustCompile(`\n\s*\n`).Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, block{text: p, isTable: false, tokens: tokenEstimate(p, cfg.TokensPerWord)})
	}
	return out
}

// Chunk partitions one section's markdown into model.Chunk rows.
func Chunk(accession, sectionType, ticker string, formType model.FormType, filingDate time.Time, markdown string, cfg Config) []model.Chunk {
	blocks := splitBlocks(markdown, cfg)
	prefix := model.ContextPrefix(ticker, formType, filingDate, sectionType)

	var texts []string
	var containsTable []bool
	var tokenCounts []int

	var acc []block
	accTokens := 0
	accHasTable := false

	flush := func() {
		if len(acc) == 0 {
			return
		}
		parts := make([]string, len(acc))
		for i, b := range acc {
			parts[i] = b.text
		}
		texts = append(texts, strings.Join(parts, "\n\n"))
		containsTable = append(containsTable, accHasTable)
		tokenCounts = append(tokenCounts, accTokens)
	}

	seedOverlap := func(fromAcc []block) []block {
		var seed []block
		tokens := 0
		for i := len(fromAcc) - 1; i >= 0; i-- {
			b := fromAcc[i]
			if b.isTable {
				break
			}
			if tokens+b.tokens > cfg.OverlapTokens {
				break
			}
			seed = append([]block{b}, seed...)
			tokens += b.tokens
		}
		return seed
	}

	for _, b := range blocks {
		if b.isTable && b.tokens > cfg.MaxTokens {
			flush()
			acc, accTokens, accHasTable = nil, 0, false

			texts = append(texts, b.text)
			containsTable = append(containsTable, true)
			tokenCounts = append(tokenCounts, b.tokens)
			continue
		}

		if accTokens+b.tokens > cfg.MaxTokens && len(acc) > 0 {
			flush()
			seed := seedOverlap(acc)
			acc = seed
			accTokens = 0
			accHasTable = false
			for _, s := range seed {
				accTokens += s.tokens
			}
		}

		acc = append(acc, b)
		accTokens += b.tokens
		if b.isTable {
			accHasTable = true
		}
	}

	if len(acc) > 0 && (accHasTable || accTokens >= cfg.MinTokens) {
		flush()
	}

	chunks := make([]model.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = model.Chunk{
			ChunkID:         model.BuildChunkID(accession, sectionType, i),
			AccessionNumber: accession,
			SectionType:     sectionType,
			ChunkIndex:      i,
			ContextPrefix:   prefix,
			Text:            text,
			TokenCount:      tokenCounts[i],
			ContainsTable:   containsTable[i],
		}
	}
	return chunks
}
