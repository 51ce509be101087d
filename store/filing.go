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

// UpsertFiling upserts a filing by accession number (§4.6).
func (s *Store) UpsertFiling(ctx context.Context, f *model.Filing) error {
	const sql = `INSERT INTO filings (
	accession_number, cik, form_type, filing_date, period_of_report, acceptance_datetime,
	has_xbrl, storage_path, download_status, xbrl_processed, sections_processed,
	markdown_body, word_count, processing_errors, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
ON CONFLICT (accession_number) DO UPDATE SET
	form_type = EXCLUDED.form_type,
	filing_date = EXCLUDED.filing_date,
	period_of_report = EXCLUDED.period_of_report,
	acceptance_datetime = EXCLUDED.acceptance_datetime,
	has_xbrl = EXCLUDED.has_xbrl,
	storage_path = EXCLUDED.storage_path,
	download_status = EXCLUDED.download_status,
	xbrl_processed = EXCLUDED.xbrl_processed,
	sections_processed = EXCLUDED.sections_processed,
	markdown_body = EXCLUDED.markdown_body,
	word_count = EXCLUDED.word_count,
	processing_errors = EXCLUDED.processing_errors,
	updated_at = now()`

	_, err := s.pool.Exec(ctx, sql, f.AccessionNumber, f.CIK, string(f.FormType), f.FilingDate,
		f.PeriodOfReport, f.AcceptanceDate, f.HasXBRL, f.StoragePath, string(f.DownloadStatus),
		f.XBRLProcessed, f.SectionsProcessed, f.MarkdownBody, f.WordCount, f.ProcessingErrors)
	if err != nil {
		return logSQLErr(err, sql)
	}
	return nil
}

// FilingByAccession reads a single filing row.
func (s *Store) FilingByAccession(ctx context.Context, accession string) (*model.Filing, error) {
	var f model.Filing
	err := pgxscan.Get(ctx, s.pool, &f, `SELECT * FROM filings WHERE accession_number = $1`, accession)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// LatestFilingPerPeriod reads the §4.6 canonical view: one row per
// (cik, period_of_report), amendments preferred over originals, then most
// recent filing_date (§8 S6).
func (s *Store) LatestFilingPerPeriod(ctx context.Context, cik string) ([]model.Filing, error) {
	var rows []model.Filing
	err := pgxscan.Select(ctx, s.pool, &rows,
		`SELECT accession_number, cik, form_type, filing_date, period_of_report
		 FROM latest_filing_per_period WHERE cik = $1 ORDER BY period_of_report DESC`, cik)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
