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
	"time"

	"github.com/finloom/edgaringest/model"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
)

// Subscribe adds (or re-enables) a tracked company, grounded in the
// teacher's library.NewSubscription flow.
func (s *Store) Subscribe(ctx context.Context, cik, ticker string) (*model.Subscription, error) {
	sub := &model.Subscription{ID: uuid.New(), CIK: cik, Ticker: ticker, Enabled: true}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (id, cik, ticker, enabled, added_at)
		 VALUES ($1, $2, $3, true, now())
		 ON CONFLICT (cik) DO UPDATE SET enabled = true, ticker = EXCLUDED.ticker`,
		sub.ID, sub.CIK, sub.Ticker)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe disables a tracked company without deleting its history.
func (s *Store) Unsubscribe(ctx context.Context, cik string) error {
	_, err := s.pool.Exec(ctx, `UPDATE subscriptions SET enabled = false WHERE cik = $1`, cik)
	return err
}

// EnabledSubscriptions lists every company the `run` command should ingest.
func (s *Store) EnabledSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	var rows []model.Subscription
	err := pgxscan.Select(ctx, s.pool, &rows, `SELECT * FROM subscriptions WHERE enabled = true`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteSubscription removes the subscription row outright (the `unsubscribe
// --delete` path); it leaves ingested companies/filings/facts untouched.
func (s *Store) DeleteSubscription(ctx context.Context, cik string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM subscriptions WHERE cik = $1`, cik)
	return err
}

// MarkSubscriptionRun stamps last_run_at after a run completes.
func (s *Store) MarkSubscriptionRun(ctx context.Context, cik string, at time.Time) error {
	_, err := s.pool.Exec(ctx, `UPDATE subscriptions SET last_run_at = $2 WHERE cik = $1`, cik, at)
	return err
}
