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
	"github.com/jackc/pgx/v5"
)

// DBTX is satisfied by *pgxpool.Pool, *pgxpool.Conn, and pgx.Tx, letting
// staging writers pass either a dedicated connection or an open
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgx.CommandTag, error)
}

// InsertFactInto writes a fact into tbl (a staging or production facts
// table), insert-if-absent on the §3 uniqueness tuple. tbl is
// parameterized the way the teacher's DataType.ExpandedSchema substitutes
// a table name into a DDL template.
func InsertFactInto(ctx context.Context, db DBTX, tbl string, f *model.Fact) error {
	sql := fmt.Sprintf(`INSERT INTO %[1]s (
	accession_number, concept_name, numeric_value, text_value, unit, decimals,
	period_type, period_start, period_end, dimensions, dimensions_canonical,
	is_custom, is_negated, parent_concept, depth, label
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (accession_number, concept_name, period_end, dimensions_canonical) DO NOTHING`, tbl)

	_, err := db.Exec(ctx, sql, f.AccessionNumber, f.ConceptName, f.NumericValue, f.TextValue,
		f.Unit, f.Decimals, string(f.PeriodType), f.PeriodStart, f.PeriodEnd, f.Dimensions,
		f.Dimensions.Canonical(), f.IsCustom, f.IsNegated, f.ParentConcept, f.Depth, f.Label)
	if err != nil {
		return logSQLErr(err, sql)
	}
	return nil
}

// FactsForAccession reads every production fact belonging to a filing, the
// read C9 and C11 both depend on.
func (s *Store) FactsForAccession(ctx context.Context, accession string) ([]model.Fact, error) {
	var facts []model.Fact
	err := pgxscan.Select(ctx, s.pool, &facts,
		`SELECT * FROM facts WHERE accession_number = $1`, accession)
	if err != nil {
		return nil, err
	}
	return facts, nil
}
