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

// Package reconcile is the duplicate & reconciliation engine (C11): a
// read-only audit pass over the canonical store plus one surgical repair
// path, grounded in the teacher's healthcheck idiom of a periodic sweep
// that reports findings rather than crashing the process.
package reconcile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// IssueSeverity mirrors model.DataQualityIssueSeverity without importing it
// directly, keeping this package's findings self-contained.
type IssueSeverity string

const (
	SeverityWarning IssueSeverity = "warning"
	SeverityError   IssueSeverity = "error"
)

// Issue is one finding surfaced by a reconciliation pass.
type Issue struct {
	Kind        string
	Severity    IssueSeverity
	Accession   string
	Description string
}

// DuplicateGroup is a set of normalized-metric rows sharing the same
// uniqueness tuple, with the keeper already selected.
type DuplicateGroup struct {
	Ticker, MetricID string
	FiscalYear       int
	KeeperID         int64
	DropIDs          []int64
}

// Engine runs the C11 checks against the canonical store.
type Engine struct {
	pool      *pgxpool.Pool
	tolerance decimal.Decimal
}

// New builds an Engine with the given tolerancePercent; the configured
// default (reconciler.tolerance_percent) is 1 (§4.11).
func New(pool *pgxpool.Pool, tolerancePercent decimal.Decimal) *Engine {
	return &Engine{pool: pool, tolerance: tolerancePercent}
}

// FindDuplicateMetrics groups normalized_metric_values by their uniqueness
// tuple and picks the keeper: highest confidence, tie-broken by most
// recent creation timestamp (§4.11).
func (e *Engine) FindDuplicateMetrics(ctx context.Context) ([]DuplicateGroup, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT ticker, fiscal_year, COALESCE(fiscal_quarter, 0), metric_id, id, confidence, created_at
		FROM normalized_metric_values
		ORDER BY ticker, fiscal_year, COALESCE(fiscal_quarter, 0), metric_id, confidence DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		ticker     string
		year       int
		quarter    int
		metric     string
		id         int64
		confidence decimal.Decimal
		createdAt  any
	}

	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ticker, &r.year, &r.quarter, &r.metric, &r.id, &r.confidence, &r.createdAt); err != nil {
			return nil, err
		}
		all = append(all, r)
	}

	var groups []DuplicateGroup
	i := 0
	for i < len(all) {
		j := i + 1
		for j < len(all) && all[j].ticker == all[i].ticker && all[j].year == all[i].year && all[j].quarter == all[i].quarter && all[j].metric == all[i].metric {
			j++
		}
		if j-i > 1 {
			g := DuplicateGroup{Ticker: all[i].ticker, MetricID: all[i].metric, FiscalYear: all[i].year, KeeperID: all[i].id}
			for _, dup := range all[i+1 : j] {
				g.DropIDs = append(g.DropIDs, dup.id)
			}
			groups = append(groups, g)
		}
		i = j
	}
	return groups, nil
}

// FindOrphanedFilings returns filings marked processed with no facts.
func (e *Engine) FindOrphanedFilings(ctx context.Context) ([]Issue, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT f.accession_number FROM filings f
		LEFT JOIN facts ft ON ft.accession_number = f.accession_number
		WHERE f.xbrl_processed = true AND ft.id IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var accession string
		if err := rows.Scan(&accession); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "orphaned_filing", Severity: SeverityWarning, Accession: accession,
			Description: "filing marked xbrl_processed with zero facts"})
	}
	return issues, nil
}

// FindOrphanedFacts returns facts whose accession has no filing row, and
// filings whose CIK has no company row.
func (e *Engine) FindOrphanedFacts(ctx context.Context) ([]Issue, error) {
	var issues []Issue

	factRows, err := e.pool.Query(ctx, `
		SELECT DISTINCT ft.accession_number FROM facts ft
		LEFT JOIN filings f ON f.accession_number = ft.accession_number
		WHERE f.accession_number IS NULL`)
	if err != nil {
		return nil, err
	}
	defer factRows.Close()
	for factRows.Next() {
		var accession string
		if err := factRows.Scan(&accession); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "orphaned_fact", Severity: SeverityError, Accession: accession,
			Description: "fact references a nonexistent filing"})
	}

	filingRows, err := e.pool.Query(ctx, `
		SELECT f.accession_number FROM filings f
		LEFT JOIN companies c ON c.cik = f.cik
		WHERE c.cik IS NULL`)
	if err != nil {
		return nil, err
	}
	defer filingRows.Close()
	for filingRows.Next() {
		var accession string
		if err := filingRows.Scan(&accession); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "orphaned_filing_company", Severity: SeverityError, Accession: accession,
			Description: "filing references a nonexistent company"})
	}

	return issues, nil
}

// FindNullFacts returns facts with neither value populated — these should
// never exist given C5's rejection rule, so their presence indicates a
// bypass of the extractor.
func (e *Engine) FindNullFacts(ctx context.Context) ([]Issue, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT accession_number FROM facts WHERE numeric_value IS NULL AND text_value IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var accession string
		if err := rows.Scan(&accession); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "null_fact", Severity: SeverityError, Accession: accession,
			Description: "fact has neither numeric nor text value"})
	}
	return issues, nil
}

// CheckBalanceSheetCoherence verifies Assets ~= Liabilities +
// StockholdersEquity within tolerance for every filing that reports all
// three concepts (§4.11).
func (e *Engine) CheckBalanceSheetCoherence(ctx context.Context) ([]Issue, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT accession_number, concept_name, numeric_value FROM facts
		WHERE concept_name IN ('us-gaap:Assets', 'us-gaap:Liabilities', 'us-gaap:StockholdersEquity',
		                        'us-gaap:LiabilitiesAndStockholdersEquity')
		AND numeric_value IS NOT NULL
		AND dimensions_canonical = ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byAccession := map[string]map[string]decimal.Decimal{}
	for rows.Next() {
		var accession, concept string
		var value decimal.Decimal
		if err := rows.Scan(&accession, &concept, &value); err != nil {
			return nil, err
		}
		if byAccession[accession] == nil {
			byAccession[accession] = map[string]decimal.Decimal{}
		}
		byAccession[accession][concept] = value
	}

	var issues []Issue
	for accession, concepts := range byAccession {
		assets, hasAssets := concepts["us-gaap:Assets"]
		if !hasAssets {
			continue
		}

		if liabEquity, ok := concepts["us-gaap:LiabilitiesAndStockholdersEquity"]; ok && liabEquity.Equal(assets) {
			continue
		}

		liab, hasLiab := concepts["us-gaap:Liabilities"]
		equity, hasEquity := concepts["us-gaap:StockholdersEquity"]
		if !hasLiab || !hasEquity {
			continue
		}

		sum := liab.Add(equity)
		diffPct := assets.Sub(sum).Abs().Div(assets).Mul(decimal.NewFromInt(100))

		switch {
		case diffPct.GreaterThan(decimal.NewFromInt(5)):
			issues = append(issues, Issue{Kind: "balance_sheet_imbalance", Severity: SeverityError, Accession: accession,
				Description: fmt.Sprintf("Assets vs Liabilities+Equity mismatch %.2f%%", diffPct.InexactFloat64())})
		case diffPct.GreaterThan(e.tolerance):
			issues = append(issues, Issue{Kind: "balance_sheet_imbalance", Severity: SeverityWarning, Accession: accession,
				Description: fmt.Sprintf("Assets vs Liabilities+Equity mismatch %.2f%%", diffPct.InexactFloat64())})
		}
	}
	return issues, nil
}

var signSensitiveConcepts = []string{"us-gaap:Assets", "us-gaap:Revenues", "dei:EntityCommonStockSharesOutstanding"}

// CheckValueSignSanity flags unexpected negatives on concepts that should
// never go negative, unless explicitly marked is_negated.
func (e *Engine) CheckValueSignSanity(ctx context.Context) ([]Issue, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT accession_number, concept_name FROM facts
		WHERE concept_name = ANY($1) AND numeric_value < 0 AND is_negated = false`, signSensitiveConcepts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var accession, concept string
		if err := rows.Scan(&accession, &concept); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "unexpected_negative", Severity: SeverityWarning, Accession: accession,
			Description: fmt.Sprintf("%s is negative without is_negated", concept)})
	}
	return issues, nil
}

// CheckSectionCompleteness verifies the §4.11 required sections (Item 1,
// 1A, 7) are present for every filing.
func (e *Engine) CheckSectionCompleteness(ctx context.Context) ([]Issue, error) {
	rows, err := e.pool.Query(ctx, `
		SELECT f.accession_number, req.item
		FROM filings f
		CROSS JOIN (VALUES ('ITEM 1'), ('ITEM 1A'), ('ITEM 7')) AS req(item)
		LEFT JOIN sections s ON s.accession_number = f.accession_number AND s.section_type = req.item
		WHERE f.sections_processed = true AND s.id IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var accession, item string
		if err := rows.Scan(&accession, &item); err != nil {
			return nil, err
		}
		issues = append(issues, Issue{Kind: "missing_required_section", Severity: SeverityError, Accession: accession,
			Description: fmt.Sprintf("missing required section %s", item)})
	}
	return issues, nil
}

// RemoveDuplicates deletes every non-keeper row in each group, in one
// transaction. dryRun reports the plan without mutating.
func (e *Engine) RemoveDuplicates(ctx context.Context, groups []DuplicateGroup, dryRun bool) (int, error) {
	if dryRun {
		total := 0
		for _, g := range groups {
			total += len(g.DropIDs)
		}
		return total, nil
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, g := range groups {
		for _, id := range g.DropIDs {
			tag, err := tx.Exec(ctx, `DELETE FROM normalized_metric_values WHERE id = $1`, id)
			if err != nil {
				_ = tx.Rollback(ctx)
				return 0, err
			}
			deleted += int(tag.RowsAffected())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
