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

import "time"

// SectionType is one of the closed set of canonical 10-K items.
type SectionType string

// Canonical 10-K items, Item 1 through Item 16 with the lettered sub-items
// that actually appear in practice.
const (
	Item1   SectionType = "ITEM 1"
	Item1A  SectionType = "ITEM 1A"
	Item1B  SectionType = "ITEM 1B"
	Item2   SectionType = "ITEM 2"
	Item3   SectionType = "ITEM 3"
	Item4   SectionType = "ITEM 4"
	Item5   SectionType = "ITEM 5"
	Item6   SectionType = "ITEM 6"
	Item7   SectionType = "ITEM 7"
	Item7A  SectionType = "ITEM 7A"
	Item8   SectionType = "ITEM 8"
	Item9   SectionType = "ITEM 9"
	Item9A  SectionType = "ITEM 9A"
	Item9B  SectionType = "ITEM 9B"
	Item10  SectionType = "ITEM 10"
	Item11  SectionType = "ITEM 11"
	Item12  SectionType = "ITEM 12"
	Item13  SectionType = "ITEM 13"
	Item14  SectionType = "ITEM 14"
	Item15  SectionType = "ITEM 15"
	Item16  SectionType = "ITEM 16"
)

// RequiredSections are the items C11's completeness check demands be
// present (§4.11).
var RequiredSections = []SectionType{Item1, Item1A, Item7}

// AllSections is the closed set of canonical items, in document order.
var AllSections = []SectionType{
	Item1, Item1A, Item1B, Item2, Item3, Item4, Item5, Item6,
	Item7, Item7A, Item8, Item9, Item9A, Item9B,
	Item10, Item11, Item12, Item13, Item14, Item15, Item16,
}

// Section is one (filing, canonical item) body of markdown text.
type Section struct {
	ID              int64       `db:"id" json:"id"`
	AccessionNumber string      `db:"accession_number" json:"accession_number"`
	SectionType     SectionType `db:"section_type" json:"section_type"`
	Title           string      `db:"title" json:"title"`
	MarkdownBody    string      `db:"markdown_body" json:"markdown_body"`
	WordCount       int         `db:"word_count" json:"word_count"`
	Tier            int         `db:"tier" json:"tier"` // which segmenter tier produced this row
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}
