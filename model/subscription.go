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

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a tracked company (CIK/ticker) the pipeline re-ingests on
// every `run`, the supplemental entity described in SPEC_FULL.md §3,
// grounded in the teacher's library.Subscription.
type Subscription struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	CIK       string     `db:"cik" json:"cik"`
	Ticker    string     `db:"ticker" json:"ticker"`
	Enabled   bool       `db:"enabled" json:"enabled"`
	AddedAt   time.Time  `db:"added_at" json:"added_at"`
	LastRunAt *time.Time `db:"last_run_at" json:"last_run_at,omitempty"`
}
