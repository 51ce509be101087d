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

// Package merge is the single-writer merge coordinator (C8), grounded in
// original_source's MergeCoordinator: validate staged data via pluggable
// hooks, then DELETE+INSERT the filing's derived rows within one
// transaction. Only one Coordinator instance may run at a time; see §5.
package merge

import (
	"context"
	"fmt"
	"sync"

	"github.com/finloom/edgaringest/staging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Hook is a pre-commit validation function. ok=false with a non-empty
// message in strict mode aborts the merge; in lenient mode the message is
// logged and the merge proceeds.
type Hook func(ctx context.Context, pool *pgxpool.Pool, runID, accession string) (ok bool, message string, err error)

// Result is the explicit outcome of one merge, per §9's "heterogeneous
// result dataclass" redesign note.
type Result struct {
	Accession     string
	Success       bool
	FactsMerged   int
	SectionsMerged int
	ChunksMerged  int
	Error         error
}

// Coordinator runs merges. writeMu serializes commits process-wide,
// enforcing §8 invariant 8 (at-most-one-writer) even if callers invoke
// MergeFiling concurrently from multiple goroutines.
type Coordinator struct {
	pool       *pgxpool.Pool
	strictMode bool
	hooks      []Hook

	writeMu sync.Mutex
}

// New builds a Coordinator with the two built-in hooks registered (§4.8):
// non-trivial section length, and no duplicate section-type rows staged.
func New(pool *pgxpool.Pool, strictMode bool) *Coordinator {
	c := &Coordinator{pool: pool, strictMode: strictMode}
	c.RegisterHook(validateSectionsNotEmpty)
	c.RegisterHook(validateNoDuplicateSections)
	return c
}

// RegisterHook appends a validation hook, run in registration order.
func (c *Coordinator) RegisterHook(h Hook) {
	c.hooks = append(c.hooks, h)
}

// MergeFiling runs the §4.8 sequence for one accession: pre-commit hooks,
// then a single transaction that deletes and re-inserts every derived
// table for that accession from its staging counterpart.
func (c *Coordinator) MergeFiling(ctx context.Context, runID, accession string) Result {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for _, hook := range c.hooks {
		ok, message, err := hook(ctx, c.pool, runID, accession)
		if err != nil {
			return Result{Accession: accession, Error: err}
		}
		if !ok {
			if c.strictMode {
				return Result{Accession: accession, Error: fmt.Errorf("merge: preflight hook failed: %s", message)}
			}
			log.Warn().Str("Accession", accession).Str("Message", message).Msg("merge: preflight warning")
		}
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return Result{Accession: accession, Error: err}
	}

	result := Result{Accession: accession, Success: true}

	rollback := func(err error) Result {
		_ = tx.Rollback(ctx)
		result.Success = false
		result.Error = err
		return result
	}

	for _, base := range staging.Tables {
		stagingTbl := staging.TableName(base, runID)

		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE accession_number = $1`, base), accession); err != nil {
			return rollback(fmt.Errorf("merge: delete from %s: %w", base, err))
		}

		if !tableExists(ctx, c.pool, stagingTbl) {
			// A missing staging table is not an error: no data of that
			// kind was produced for this run.
			continue
		}

		tag, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s SELECT * FROM %s WHERE accession_number = $1`, base, stagingTbl),
			accession)
		if err != nil {
			return rollback(fmt.Errorf("merge: insert into %s: %w", base, err))
		}

		switch base {
		case "facts":
			result.FactsMerged = int(tag.RowsAffected())
		case "sections":
			result.SectionsMerged = int(tag.RowsAffected())
		case "chunks":
			result.ChunksMerged = int(tag.RowsAffected())
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE filings SET sections_processed = true, updated_at = now() WHERE accession_number = $1`,
		accession); err != nil {
		return rollback(fmt.Errorf("merge: update filings: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		result.Success = false
		result.Error = err
		return result
	}

	return result
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, name string) bool {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists)
	return err == nil && exists
}
