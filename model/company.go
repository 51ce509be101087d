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

import "time"

// Company is one issuer, keyed by its EDGAR central index key. Companies are
// upserted on first encounter and never deleted.
type Company struct {
	CIK           string    `db:"cik" json:"cik"`
	Name          string    `db:"name" json:"name"`
	Ticker        string    `db:"ticker" json:"ticker"`
	IndustryCode  string    `db:"industry_code" json:"industry_code"`
	FiscalYearEnd string    `db:"fiscal_year_end" json:"fiscal_year_end"` // MMDD
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
