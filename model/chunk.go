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
	"fmt"
	"strings"
	"time"
)

// Chunk is one token-bounded, table-safe, context-prefixed segment of a
// section's markdown, produced by the semantic chunker (C10).
type Chunk struct {
	ChunkID         string    `db:"chunk_id" json:"chunk_id"`
	AccessionNumber string    `db:"accession_number" json:"accession_number"`
	SectionType     string    `db:"section_type" json:"section_type"`
	ChunkIndex      int       `db:"chunk_index" json:"chunk_index"`
	ContextPrefix   string    `db:"context_prefix" json:"context_prefix"`
	Text            string    `db:"text" json:"text"`
	TokenCount       int       `db:"token_count" json:"token_count"`
	ContainsTable    bool      `db:"contains_table" json:"contains_table"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// BuildChunkID builds the canonical chunk identifier "{accession}_{itemkey}_{index:04d}".
func BuildChunkID(accession string, sectionType string, index int) string {
	itemKey := strings.ToUpper(strings.ReplaceAll(sectionType, " ", ""))
	return fmt.Sprintf("%s_%s_%04d", accession, itemKey, index)
}

// ContextPrefix builds the "Company: TICKER | Filing: 10-K YYYY-MM-DD |
// Section: ITEM" prefix prepended to each chunk's text.
func ContextPrefix(ticker string, formType FormType, filingDate time.Time, sectionType string) string {
	return fmt.Sprintf("Company: %s | Filing: %s %s | Section: %s",
		ticker, formType, filingDate.Format("2006-01-02"), sectionType)
}
