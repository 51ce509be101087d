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

// Package staging manages per-run isolated write tables (C7), grounded in
// original_source's StagingManager: each ingestion run gets its own
// {base}_staging_{run_id} tables so parallel workers never contend for
// production table locks.
package staging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables are the production tables that accumulate per-filing derived rows
// and therefore need a staging counterpart (§4.7). This domain's derived
// row set is facts+sections+chunks, not the original's tables/footnotes,
// since XBRL facts and markdown sections replace the HTML table/footnote
// extraction that original had no EDGAR analogue for — see DESIGN.md.
var Tables = []string{"facts", "sections", "chunks"}

// Manager creates, inspects, and tears down staging tables for one
// ingestion run.
type Manager struct {
	pool *pgxpool.Pool
}

// New builds a Manager bound to pool.
func New(pool *pgxpool.Pool) *Manager {
	return &Manager{pool: pool}
}

// GenerateRunID allocates a timestamp-based run identifier, unique per
// process-second per §4.7.
func GenerateRunID(now time.Time) string {
	return now.Format("20060102_150405")
}

// TableName returns the staging table name for a base table and run.
func TableName(base, runID string) string {
	return fmt.Sprintf("%s_staging_%s", base, runID)
}

// CreateTables clones each of Tables into an empty staging table for runID.
func (m *Manager) CreateTables(ctx context.Context, runID string) error {
	for _, base := range Tables {
		staging := TableName(base, runID)
		sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (LIKE %s INCLUDING ALL)`, staging, base)
		if _, err := m.pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("staging: create %s: %w", staging, err)
		}
	}
	return nil
}

// DropTables removes all staging tables for runID; the run command calls it
// once after every filing of the run has been processed.
func (m *Manager) DropTables(ctx context.Context, runID string) error {
	for _, base := range Tables {
		staging := TableName(base, runID)
		if _, err := m.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, staging)); err != nil {
			return fmt.Errorf("staging: drop %s: %w", staging, err)
		}
	}
	return nil
}

// Stats returns a row count per base table for runID; a staging table that
// does not exist yet reports zero rather than erroring.
func (m *Manager) Stats(ctx context.Context, runID string) (map[string]int, error) {
	stats := make(map[string]int, len(Tables))
	for _, base := range Tables {
		staging := TableName(base, runID)
		var count int
		err := pgxscan.Get(ctx, m.pool, &count, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, staging))
		if err != nil {
			stats[base] = 0
			continue
		}
		stats[base] = count
	}
	return stats, nil
}

// ListActiveRuns discovers run IDs with at least one staging table present,
// by parsing information_schema.tables the way the original StagingManager
// does.
func (m *Manager) ListActiveRuns(ctx context.Context) ([]string, error) {
	var names []string
	err := pgxscan.Select(ctx, m.pool, &names,
		`SELECT table_name FROM information_schema.tables WHERE table_name LIKE '%_staging_%'`)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var runIDs []string
	for _, name := range names {
		parts := strings.SplitN(name, "_staging_", 2)
		if len(parts) != 2 {
			continue
		}
		if !seen[parts[1]] {
			seen[parts[1]] = true
			runIDs = append(runIDs, parts[1])
		}
	}
	return runIDs, nil
}

// CleanupOrphaned drops every table matching %_staging_%, for staging left
// behind by a crashed or interrupted run (§5 cancellation policy: never
// merged automatically, only garbage collected).
func (m *Manager) CleanupOrphaned(ctx context.Context) (int, error) {
	var names []string
	err := pgxscan.Select(ctx, m.pool, &names,
		`SELECT table_name FROM information_schema.tables WHERE table_name LIKE '%_staging_%'`)
	if err != nil {
		return 0, err
	}

	for _, name := range names {
		if _, err := m.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name)); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}
