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

// UpsertCompany upserts a company by CIK (§4.6), the same ON CONFLICT
// pattern as the teacher's Asset.SaveDB.
func (s *Store) UpsertCompany(ctx context.Context, c *model.Company) error {
	const sql = `INSERT INTO companies (cik, name, ticker, industry_code, fiscal_year_end, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (cik) DO UPDATE SET
	name = EXCLUDED.name,
	ticker = COALESCE(NULLIF(EXCLUDED.ticker, ''), companies.ticker),
	industry_code = EXCLUDED.industry_code,
	fiscal_year_end = EXCLUDED.fiscal_year_end,
	updated_at = now()`

	_, err := s.pool.Exec(ctx, sql, c.CIK, c.Name, c.Ticker, c.IndustryCode, c.FiscalYearEnd)
	if err != nil {
		return logSQLErr(err, sql)
	}
	return nil
}

// CompanyByCIK reads a single company row.
func (s *Store) CompanyByCIK(ctx context.Context, cik string) (*model.Company, error) {
	var c model.Company
	err := pgxscan.Get(ctx, s.pool, &c, `SELECT * FROM companies WHERE cik = $1`, cik)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
