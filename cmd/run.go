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
	"path/filepath"
	"time"

	"github.com/finloom/edgaringest/cache"
	"github.com/finloom/edgaringest/chunker"
	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/edgarindex"
	"github.com/finloom/edgaringest/fetch"
	"github.com/finloom/edgaringest/merge"
	"github.com/finloom/edgaringest/model"
	"github.com/finloom/edgaringest/pipeline"
	"github.com/finloom/edgaringest/section"
	"github.com/finloom/edgaringest/staging"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [cik...]",
	Short: "Ingest filings for tracked companies",
	Long: `The run sub-command ingests EDGAR filings. If no arguments are provided it
runs every enabled subscription; if CIKs are given it runs only those,
ignoring their subscription enabled flag.`,
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

		stagingMgr := staging.New(st.Pool())
		runID := staging.GenerateRunID(time.Now())
		if err := stagingMgr.CreateTables(ctx, runID); err != nil {
			log.Fatal().Err(err).Msg("could not create staging tables")
		}

		f := fetch.New(cfg.SECAPI.RateLimit, int(cfg.SECAPI.RateLimit*2), time.Duration(cfg.SECAPI.Timeout)*time.Second, cfg.SECAPI.UserAgent)
		coordinator := merge.New(st.Pool(), cfg.Reconciler.StrictMode)

		var markdownCache cache.Cache = cache.Noop{}
		if cfg.Features.CachingEnabled {
			badgerCache, err := cache.OpenBadger(filepath.Join(cfg.FilesystemRoot, "cache"))
			if err != nil {
				log.Fatal().Err(err).Msg("could not open cache")
			}
			defer badgerCache.Close()
			markdownCache = badgerCache
		}
		segmenter := section.New(st, section.NoopFinder{}, markdownCache)

		p := &pipeline.Pipeline{
			Fetcher:   f,
			Store:     st,
			Staging:   stagingMgr,
			Merge:     coordinator,
			Segmenter: segmenter,
			Chunker: chunker.Config{
				MinTokens:     cfg.Chunker.MinTokens,
				MaxTokens:     cfg.Chunker.MaxTokens,
				OverlapTokens: cfg.Chunker.OverlapTokens,
				TokensPerWord: cfg.Chunker.TokensPerWord,
			},
			BackupBucket: cfg.BackblazeBucket,
		}

		ciks := args
		if len(ciks) == 0 {
			subs, err := st.EnabledSubscriptions(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("could not load enabled subscriptions")
			}
			for _, s := range subs {
				ciks = append(ciks, s.CIK)
			}
		}

		for _, rawCIK := range ciks {
			cik, err := model.NormalizeCIK(rawCIK)
			if err != nil {
				log.Error().Err(err).Str("CIK", rawCIK).Msg("skipping invalid CIK")
				continue
			}

			company, err := st.CompanyByCIK(ctx, cik)
			if err != nil {
				log.Error().Err(err).Str("CIK", cik).Msg("skipping unknown company")
				continue
			}

			runCompany(ctx, p, f, *company, runID)
		}

		if err := stagingMgr.DropTables(ctx, runID); err != nil {
			log.Warn().Err(err).Str("RunID", runID).Msg("could not drop staging tables after run")
		}
	},
}

func runCompany(ctx context.Context, p *pipeline.Pipeline, f *fetch.Fetcher, company model.Company, runID string) {
	filings, err := p.Store.LatestFilingPerPeriod(ctx, company.CIK)
	if err != nil {
		log.Error().Err(err).Str("CIK", company.CIK).Msg("could not list filings")
		return
	}

	for _, filing := range filings {
		docs, err := edgarindex.Resolve(ctx, f, company.CIK, filing.AccessionNumber)
		if err != nil {
			log.Error().Err(err).Str("Accession", filing.AccessionNumber).Msg("could not resolve filing index")
			continue
		}

		result := p.IngestFiling(ctx, company, filing.AccessionNumber, filing.FormType, filing.FilingDate, docs, runID)
		if result.Error != nil {
			log.Error().Err(result.Error).Str("Accession", filing.AccessionNumber).Msg("ingestion failed")
			continue
		}

		log.Info().Str("Accession", filing.AccessionNumber).Str("Outcome", string(result.Outcome)).
			Int("Facts", result.Facts).Int("Sections", result.Sections).Int("Chunks", result.Chunks).
			Msg("filing ingested")
	}

	if err := p.Store.MarkSubscriptionRun(ctx, company.CIK, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Str("CIK", company.CIK).Msg("could not stamp subscription last_run_at")
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
