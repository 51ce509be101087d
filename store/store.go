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

// Package store is the canonical store (C6): a pgxpool-backed relational
// persistence layer for companies, filings, facts, sections, standardized
// metrics, concept mappings, normalized metric values, chunks, and the
// processing/data-quality audit tables. Connection and pool handling is
// grounded directly in the teacher's library.Library.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store wraps a pgxpool.Pool and exposes the per-entity query patterns C6
// requires.
type Store struct {
	DSN  string
	pool *pgxpool.Pool
}

// New builds a Store bound to dsn without connecting yet, mirroring the
// teacher's Library zero-value-then-Connect lifecycle.
func New(dsn string) *Store {
	return &Store{DSN: dsn}
}

// Connect opens the pgxpool, configuring pool size / timeout from the
// caller-supplied knobs (§6 database.pool_size / database.timeout).
func (s *Store) Connect(ctx context.Context, poolSize int, timeoutSeconds int) error {
	poolConfig, err := pgxpool.ParseConfig(s.DSN)
	if err != nil {
		return err
	}

	if poolSize > 0 {
		poolConfig.MaxConns = int32(poolSize)
	}
	if timeoutSeconds > 0 {
		poolConfig.ConnConfig.ConnectTimeout = time.Duration(timeoutSeconds) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	s.pool = pool
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Pool exposes the underlying pool for callers (staging/merge) that need a
// dedicated connection or an explicit transaction.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func logSQLErr(err error, sql string) error {
	log.Error().Err(err).Str("SQL", sql).Msg("store: query failed")
	return err
}

// Summary is a point-in-time row-count snapshot across the canonical
// tables, used by the `info` command.
type Summary struct {
	Companies         int64
	Subscriptions     int64
	Filings           int64
	Facts             int64
	Sections          int64
	Chunks            int64
	NormalizedMetrics int64
}

// Summary gathers row counts for every canonical table in one round trip.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	const sql = `SELECT
	(SELECT count(*) FROM companies),
	(SELECT count(*) FROM subscriptions WHERE enabled = true),
	(SELECT count(*) FROM filings),
	(SELECT count(*) FROM facts),
	(SELECT count(*) FROM sections),
	(SELECT count(*) FROM chunks),
	(SELECT count(*) FROM normalized_metric_values)`

	var sm Summary
	row := s.pool.QueryRow(ctx, sql)
	if err := row.Scan(&sm.Companies, &sm.Subscriptions, &sm.Filings, &sm.Facts, &sm.Sections, &sm.Chunks, &sm.NormalizedMetrics); err != nil {
		return nil, logSQLErr(err, sql)
	}
	return &sm, nil
}
