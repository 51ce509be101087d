// Copyright 2024
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
package cmd

import (
	"context"

	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/reconcile"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var reconcileFix bool

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run data quality checks across the canonical store (C11)",
	Long: `reconcile sweeps the canonical store for duplicate normalized metrics,
orphaned rows, null facts, balance-sheet imbalances, sign-sanity
violations, and missing required sections. Duplicates are reported by
default; pass --fix to delete the lower-confidence/older rows in each
duplicate group.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		st := store.New(cfg.StorageDSN)
		if err := st.Connect(ctx, cfg.Database.PoolSize, cfg.Database.Timeout); err != nil {
			log.Fatal().Err(err).Msg("could not connect to store")
		}
		defer st.Close()

		tolerance := decimal.NewFromFloat(cfg.Reconciler.TolerancePercent)
		engine := reconcile.New(st.Pool(), tolerance)

		duplicates, err := engine.FindDuplicateMetrics(ctx)
		if err != nil {
			log.Error().Err(err).Msg("duplicate metric scan failed")
		}
		log.Info().Int("Groups", len(duplicates)).Msg("duplicate normalized metrics found")

		if reconcileFix {
			removed, err := engine.RemoveDuplicates(ctx, duplicates, false)
			if err != nil {
				log.Error().Err(err).Msg("could not remove duplicate metrics")
			} else {
				log.Info().Int("Removed", removed).Msg("duplicate metrics removed")
			}
		} else if len(duplicates) > 0 {
			count, _ := engine.RemoveDuplicates(ctx, duplicates, true)
			log.Info().Int("WouldRemove", count).Msg("dry run: duplicates left in place")
		}

		checks := []struct {
			name string
			run  func(context.Context) ([]reconcile.Issue, error)
		}{
			{"orphaned filings", engine.FindOrphanedFilings},
			{"orphaned facts", engine.FindOrphanedFacts},
			{"null facts", engine.FindNullFacts},
			{"balance sheet coherence", engine.CheckBalanceSheetCoherence},
			{"value sign sanity", engine.CheckValueSignSanity},
			{"section completeness", engine.CheckSectionCompleteness},
		}

		for _, c := range checks {
			issues, err := c.run(ctx)
			if err != nil {
				log.Error().Err(err).Str("Check", c.name).Msg("check failed")
				continue
			}
			for _, issue := range issues {
				event := log.Warn()
				if issue.Severity == reconcile.SeverityError {
					event = log.Error()
				}
				event.Str("Check", c.name).Str("Accession", issue.Accession).Msg(issue.Description)
			}
			log.Info().Str("Check", c.name).Int("Issues", len(issues)).Msg("check complete")
		}
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().BoolVar(&reconcileFix, "fix", false, "delete the lower-confidence/older rows in each duplicate group")
}
