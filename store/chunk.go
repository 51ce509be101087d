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

// InsertChunkInto writes a chunk row into tbl (staging or production),
// keyed by its deterministic chunk_id.
func InsertChunkInto(ctx context.Context, db DBTX, tbl string, c *model.Chunk) error {
	sql := fmt.Sprintf(`INSERT INTO %[1]s (chunk_id, accession_number, section_type, chunk_index,
	context_prefix, text, token_count, contains_table)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (chunk_id) DO UPDATE SET
	context_prefix = EXCLUDED.context_prefix,
	text = EXCLUDED.text,
	token_count = EXCLUDED.token_count,
	contains_table = EXCLUDED.contains_table`, tbl)

	_, err := db.Exec(ctx, sql, c.ChunkID, c.AccessionNumber, c.SectionType, c.ChunkIndex,
		c.ContextPrefix, c.Text, c.TokenCount, c.ContainsTable)
	if err != nil {
		return logSQLErr(err, sql)
	}
	return nil
}

// ChunksForAccession reads every production chunk for a filing, ordered by
// chunk_index, the order §8 S4/S6 reversibility depends on.
func (s *Store) ChunksForAccession(ctx context.Context, accession string) ([]model.Chunk, error) {
	var rows []model.Chunk
	err := pgxscan.Select(ctx, s.pool, &rows,
		`SELECT * FROM chunks WHERE accession_number = $1 ORDER BY chunk_index`, accession)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
