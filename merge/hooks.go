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
package merge

import (
	"context"
	"fmt"

	"github.com/finloom/edgaringest/staging"
	"github.com/jackc/pgx/v5/pgxpool"
)

// validateSectionsNotEmpty is built-in hook (a): staged sections exist and
// are non-trivially long (>= 100 characters).
func validateSectionsNotEmpty(ctx context.Context, pool *pgxpool.Pool, runID, accession string) (bool, string, error) {
	tbl := staging.TableName("sections", runID)
	if !tableExists(ctx, pool, tbl) {
		return true, "", nil
	}

	var shortCount int
	err := pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE accession_number = $1 AND LENGTH(markdown_body) < 100`, tbl),
		accession).Scan(&shortCount)
	if err != nil {
		return false, "", err
	}

	if shortCount > 0 {
		return false, fmt.Sprintf("%d staged section(s) shorter than 100 characters", shortCount), nil
	}
	return true, "", nil
}

// validateNoDuplicateSections is built-in hook (b): no duplicate
// section_type rows in staging for this accession.
func validateNoDuplicateSections(ctx context.Context, pool *pgxpool.Pool, runID, accession string) (bool, string, error) {
	tbl := staging.TableName("sections", runID)
	if !tableExists(ctx, pool, tbl) {
		return true, "", nil
	}

	var dupCount int
	err := pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT section_type FROM %s WHERE accession_number = $1
			GROUP BY section_type HAVING COUNT(*) > 1
		) d`, tbl), accession).Scan(&dupCount)
	if err != nil {
		return false, "", err
	}

	if dupCount > 0 {
		return false, fmt.Sprintf("%d duplicate section_type row(s) staged", dupCount), nil
	}
	return true, "", nil
}
