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
	"time"

	"github.com/shopspring/decimal"
)

// MetricCategory groups standardized metrics by financial statement.
type MetricCategory string

const (
	CategoryIncomeStatement MetricCategory = "income-statement"
	CategoryBalanceSheet    MetricCategory = "balance-sheet"
	CategoryCashFlow        MetricCategory = "cash-flow"
	CategoryPerShare        MetricCategory = "per-share"
)

// MetricDataType is the unit-shape of a standardized metric's value.
type MetricDataType string

const (
	DataTypeMonetary MetricDataType = "monetary"
	DataTypeShares   MetricDataType = "shares"
	DataTypePerShare MetricDataType = "per-share"
	DataTypeRatio    MetricDataType = "ratio"
)

// StandardizedMetric is a catalog entry for one canonical, vendor-neutral
// financial metric, e.g. "revenue".
type StandardizedMetric struct {
	MetricID     string         `db:"metric_id" json:"metric_id"`
	DisplayLabel string         `db:"display_label" json:"display_label"`
	Category     MetricCategory `db:"category" json:"category"`
	DataType     MetricDataType `db:"data_type" json:"data_type"`
}

// ConceptMapping is one priority-ordered rule linking a raw XBRL concept to
// a standardized metric.
type ConceptMapping struct {
	ID               int64           `db:"id" json:"id"`
	MetricID         string          `db:"metric_id" json:"metric_id"`
	ConceptName      string          `db:"concept_name" json:"concept_name"`
	Priority         int             `db:"priority" json:"priority"` // 1 = highest
	BaselineConfidence decimal.Decimal `db:"baseline_confidence" json:"baseline_confidence"`
	IndustryScope    *string         `db:"industry_scope" json:"industry_scope,omitempty"`
}

// AppliesToIndustry reports whether this mapping rule is unscoped or
// matches the given industry code.
func (m *ConceptMapping) AppliesToIndustry(industry string) bool {
	return m.IndustryScope == nil || *m.IndustryScope == industry
}

// NormalizedMetricValue is one (company, fiscal period, metric) canonical
// value, the output of concept normalization (C9).
type NormalizedMetricValue struct {
	ID              int64           `db:"id" json:"id"`
	Ticker          string          `db:"ticker" json:"ticker"`
	FiscalYear      int             `db:"fiscal_year" json:"fiscal_year"`
	FiscalQuarter   *int            `db:"fiscal_quarter" json:"fiscal_quarter,omitempty"` // null = annual
	MetricID        string          `db:"metric_id" json:"metric_id"`
	Value           decimal.Decimal `db:"value" json:"value"`
	SourceConcept   string          `db:"source_concept" json:"source_concept"`
	SourceAccession string          `db:"source_accession" json:"source_accession"`
	Confidence      decimal.Decimal `db:"confidence" json:"confidence"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// SupersededBy reports the §4.9 monotone-confidence upsert rule: a
// candidate only replaces the existing row when its confidence is at least
// as high.
func (existing *NormalizedMetricValue) SupersededBy(candidateConfidence decimal.Decimal) bool {
	return candidateConfidence.GreaterThanOrEqual(existing.Confidence)
}
