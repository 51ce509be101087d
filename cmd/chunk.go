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

	"github.com/finloom/edgaringest/chunker"
	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// chunkCmd represents the chunk command
var chunkCmd = &cobra.Command{
	Use:   "chunk [cik...]",
	Short: "Re-chunk persisted sections for semantic search",
	Long: `chunk is a separate pass (C10) over already-segmented filings: it
re-runs the greedy token-budget chunker over every persisted section and
upserts the result by deterministic chunk_id. Useful after tuning
chunker.* configuration without re-downloading or re-segmenting filings.`,
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

		chunkCfg := chunker.Config{
			MinTokens:     cfg.Chunker.MinTokens,
			MaxTokens:     cfg.Chunker.MaxTokens,
			OverlapTokens: cfg.Chunker.OverlapTokens,
			TokensPerWord: cfg.Chunker.TokensPerWord,
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

			for _, filing := range filings {
				sections, err := st.SectionsForAccession(ctx, filing.AccessionNumber)
				if err != nil {
					log.Error().Err(err).Str("Accession", filing.AccessionNumber).Msg("could not list sections")
					continue
				}

				total := 0
				for _, sec := range sections {
					chunks := chunker.Chunk(filing.AccessionNumber, string(sec.SectionType), company.Ticker,
						filing.FormType, filing.FilingDate, sec.MarkdownBody, chunkCfg)
					for i := range chunks {
						if err := store.InsertChunkInto(ctx, st.Pool(), "chunks", &chunks[i]); err != nil {
							log.Error().Err(err).Str("Accession", filing.AccessionNumber).Msg("could not write chunk")
							continue
						}
					}
					total += len(chunks)
				}

				log.Info().Str("Accession", filing.AccessionNumber).Int("Chunks", total).Msg("filing re-chunked")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}
