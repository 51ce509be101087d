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

// LogProcessing appends one §7 audit record for a pipeline stage's outcome.
func (s *Store) LogProcessing(ctx context.Context, l *model.ProcessingLog) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO processing_logs (accession_number, stage, status, message, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		l.AccessionNumber, l.Stage, l.Status, l.Message)
	return err
}

// RecordDataQualityIssue appends one §4.11/§7 business-rule-warning row.
// Never fatal; the caller's processing continues regardless of the result.
func (s *Store) RecordDataQualityIssue(ctx context.Context, issue *model.DataQualityIssue) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO data_quality_issues (accession_number, issue_type, severity, message, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		issue.AccessionNumber, issue.IssueType, string(issue.Severity), issue.Message)
	return err
}

// HasDataQualityIssue reports whether an issue of issueType already exists
// for accession, the check §8 invariant 5 (balance-sheet sanity) is stated
// in terms of.
func (s *Store) HasDataQualityIssue(ctx context.Context, accession, issueType string) (bool, error) {
	var count int
	err := pgxscan.Get(ctx, s.pool, &count,
		`SELECT COUNT(*) FROM data_quality_issues WHERE accession_number = $1 AND issue_type = $2`,
		accession, issueType)
	return count > 0, err
}
