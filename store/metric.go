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
package store

import (
	"context"

	"github.com/finloom/edgaringest/model"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// ConceptMappings loads every mapping rule, the §4.9 "loaded once at
// startup" catalog; normalize groups and sorts these by metric/priority
// itself.
func (s *Store) ConceptMappings(ctx context.Context) ([]model.ConceptMapping, error) {
	var rows []model.ConceptMapping
	err := pgxscan.Select(ctx, s.pool, &rows, `SELECT * FROM concept_mappings ORDER BY metric_id, priority ASC`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StandardizedMetrics loads the metric catalog.
func (s *Store) StandardizedMetrics(ctx context.Context) ([]model.StandardizedMetric, error) {
	var rows []model.StandardizedMetric
	err := pgxscan.Select(ctx, s.pool, &rows, `SELECT * FROM standardized_metrics`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertNormalizedMetric implements the §4.9 monotone-by-confidence upsert:
// a candidate only overwrites an existing row when its confidence is at
// least as high (§8 invariant 4, scenario S3). Returns whether the row was
// written.
func (s *Store) UpsertNormalizedMetric(ctx context.Context, v *model.NormalizedMetricValue) (bool, error) {
	const sql = `INSERT INTO normalized_metric_values
	(ticker, fiscal_year, fiscal_quarter, metric_id, value, source_concept, source_accession, confidence, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (ticker, fiscal_year, COALESCE(fiscal_quarter, 0), metric_id) DO UPDATE SET
	value = EXCLUDED.value,
	source_concept = EXCLUDED.source_concept,
	source_accession = EXCLUDED.source_accession,
	confidence = EXCLUDED.confidence,
	created_at = now()
WHERE EXCLUDED.confidence >= normalized_metric_values.confidence`

	tag, err := s.pool.Exec(ctx, sql, v.Ticker, v.FiscalYear, v.FiscalQuarter, v.MetricID,
		v.Value, v.SourceConcept, v.SourceAccession, v.Confidence)
	if err != nil {
		return false, logSQLErr(err, sql)
	}
	return tag.RowsAffected() > 0, nil
}
