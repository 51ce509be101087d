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
	"fmt"

	"github.com/finloom/edgaringest/model"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// InsertSectionInto writes a section row into tbl (staging or production),
// upserting on the (accession_number, section_type) uniqueness tuple.
func InsertSectionInto(ctx context.Context, db DBTX, tbl string, sec *model.Section) error {
	sql := fmt.Sprintf(`INSERT INTO %[1]s (accession_number, section_type, title, markdown_body, word_count, tier)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (accession_number, section_type) DO UPDATE SET
	title = EXCLUDED.title,
	markdown_body = EXCLUDED.markdown_body,
	word_count = EXCLUDED.word_count,
	tier = EXCLUDED.tier`, tbl)

	_, err := db.Exec(ctx, sql, sec.AccessionNumber, string(sec.SectionType), sec.Title,
		sec.MarkdownBody, sec.WordCount, sec.Tier)
	if err != nil {
		return logSQLErr(err, sql)
	}
	return nil
}

// SectionByType reads one persisted section from production, the Tier 1
// lookup the segmenter (C4) consults before falling back to regex/LLM.
func (s *Store) SectionByType(ctx context.Context, accession string, sectionType model.SectionType) (*model.Section, error) {
	var sec model.Section
	err := pgxscan.Get(ctx, s.pool, &sec,
		`SELECT * FROM sections WHERE accession_number = $1 AND section_type = $2`,
		accession, string(sectionType))
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// SectionsForAccession reads every production section for a filing.
func (s *Store) SectionsForAccession(ctx context.Context, accession string) ([]model.Section, error) {
	var rows []model.Section
	err := pgxscan.Select(ctx, s.pool, &rows,
		`SELECT * FROM sections WHERE accession_number = $1`, accession)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
