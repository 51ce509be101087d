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
	"github.com/finloom/edgaringest/model"
	"github.com/finloom/edgaringest/normalize"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize [cik...]",
	Short: "Map extracted facts onto the canonical metric catalog",
	Long: `normalize is a separate pass (C9) over already-ingested filings: for
every already-persisted fact it applies the concept mapping catalog in
priority order and upserts the result, keeping only the highest-confidence
candidate per (ticker, fiscal_year, metric). Run it after "run" has
ingested new filings.`,
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

		mapper, err := normalize.Load(ctx, st)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load concept mapping catalog")
		}

		companies, err := companiesFor(ctx, st, args)
		if err != nil {
			log.Fatal().Err(err).Msg("could not resolve companies")
		}

		for _, company := range companies {
			filings, err := st.LatestFilingPerPeriod(ctx, company.CIK)
			if err != nil {
				log.Error().Err(err).Str("CIK", company.CIK).Msg("could not list filings")
				continue
			}

			var industry *string
			if company.IndustryCode != "" {
				industry = &company.IndustryCode
			}

			for _, filing := range filings {
				values, err := mapper.NormalizeFiling(ctx, filing.AccessionNumber, company.Ticker, industry)
				if err != nil {
					log.Error().Err(err).Str("Accession", filing.AccessionNumber).Msg("normalization failed")
					continue
				}
				log.Info().Str("Accession", filing.AccessionNumber).Int("Metrics", len(values)).Msg("filing normalized")
			}
		}
	},
}

// companiesFor resolves the CIK arguments, or every enabled subscription's
// company when no arguments are given, the same convention "run" uses.
func companiesFor(ctx context.Context, st *store.Store, rawCIKs []string) ([]model.Company, error) {
	ciks := rawCIKs
	if len(ciks) == 0 {
		subs, err := st.EnabledSubscriptions(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range subs {
			ciks = append(ciks, s.CIK)
		}
	}

	var companies []model.Company
	for _, raw := range ciks {
		cik, err := model.NormalizeCIK(raw)
		if err != nil {
			log.Error().Err(err).Str("CIK", raw).Msg("skipping invalid CIK")
			continue
		}
		company, err := st.CompanyByCIK(ctx, cik)
		if err != nil {
			log.Error().Err(err).Str("CIK", cik).Msg("skipping unknown company")
			continue
		}
		companies = append(companies, *company)
	}
	return companies, nil
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
