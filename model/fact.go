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
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// PeriodType distinguishes an instant (balance-sheet) fact from a duration
// (income/cash-flow statement) fact.
type PeriodType string

const (
	PeriodInstant  PeriodType = "instant"
	PeriodDuration PeriodType = "duration"
)

// maxFactMagnitude is the §3 sanity invariant: |value| <= 10^15.
var maxFactMagnitude = decimal.New(1, 15)

// Dimensions is an ordered key/value slice representing an XBRL fact's
// dimensional members. A nil or empty Dimensions means the fact is
// consolidated (company-wide).
type Dimensions []DimensionMember

// DimensionMember is one axis/member pair of a dimensional fact.
type DimensionMember struct {
	Axis   string `json:"axis"`
	Member string `json:"member"`
}

// Canonical returns a stable, order-independent string representation used
// in the fact uniqueness tuple (§3). Two Dimensions values that carry the
// same members in different orders canonicalize to the same string.
func (d Dimensions) Canonical() string {
	if len(d) == 0 {
		return ""
	}

	sorted := make([]DimensionMember, len(d))
	copy(sorted, d)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Axis != sorted[j].Axis {
			return sorted[i].Axis < sorted[j].Axis
		}
		return sorted[i].Member < sorted[j].Member
	})

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = m.Axis + "=" + m.Member
	}
	return strings.Join(parts, "&")
}

// IsConsolidated reports whether the fact carries no dimensional slice.
func (d Dimensions) IsConsolidated() bool {
	return len(d) == 0
}

// MarshalJSON writes an empty Dimensions as JSON null, so a consolidated
// fact stores NULL in the JSONB `dimensions` column (§6). Decoding uses the
// default slice unmarshaling.
func (d Dimensions) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal([]DimensionMember(d))
}

// Fact is one typed data point extracted from an XBRL instance document.
type Fact struct {
	ID              int64            `db:"id" json:"id"`
	AccessionNumber string           `db:"accession_number" json:"accession_number"`
	ConceptName     string           `db:"concept_name" json:"concept_name"`
	NumericValue    *decimal.Decimal `db:"numeric_value" json:"numeric_value,omitempty"`
	TextValue       *string          `db:"text_value" json:"text_value,omitempty"`
	Unit            string           `db:"unit" json:"unit,omitempty"`
	Decimals        *int             `db:"decimals" json:"decimals,omitempty"`
	PeriodType      PeriodType       `db:"period_type" json:"period_type"`
	PeriodStart     *time.Time       `db:"period_start" json:"period_start,omitempty"`
	PeriodEnd       time.Time        `db:"period_end" json:"period_end"`
	Dimensions      Dimensions       `db:"dimensions" json:"dimensions,omitempty"`
	IsCustom        bool             `db:"is_custom" json:"is_custom"`
	IsNegated       bool             `db:"is_negated" json:"is_negated"`
	ParentConcept   string           `db:"parent_concept" json:"parent_concept,omitempty"`
	Depth           int              `db:"depth" json:"depth"`
	Label           string           `db:"label" json:"label,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// Empty reports whether neither a numeric nor a text value is present, the
// §4.5 rejection rule: such a fact is dropped rather than persisted.
func (f *Fact) Empty() bool {
	return f.NumericValue == nil && (f.TextValue == nil || *f.TextValue == "")
}

// WithinSanityBound reports the §3 sanity invariant |value| <= 10^15.
func (f *Fact) WithinSanityBound() bool {
	if f.NumericValue == nil {
		return true
	}
	return f.NumericValue.Abs().LessThanOrEqual(maxFactMagnitude)
}

// knownNamespaces are the standard taxonomies; any other namespace makes a
// concept "custom" per §4.5.
var knownNamespaces = map[string]bool{
	"us-gaap": true,
	"dei":     true,
	"ifrs":    true,
}

// DeriveIsCustom sets IsCustom from the fact's concept namespace.
func (f *Fact) DeriveIsCustom() {
	ns, _, found := strings.Cut(f.ConceptName, ":")
	f.IsCustom = !found || !knownNamespaces[ns]
}
