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
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/healthcheck"
	"github.com/finloom/edgaringest/model"
	"github.com/finloom/edgaringest/store"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// subscribeCmd represents the subscribe command
var subscribeCmd = &cobra.Command{
	Use:   "subscribe <cik>",
	Short: "Track a company for ingestion",
	Long: `Subscriptions are the mechanism edgaringest uses to decide which companies
a daemonless "run" invokes. Subscribing:

    1. Normalizes and validates the CIK
    2. Upserts a companies row (ticker optional, stored as entered)
    3. Records an enabled subscription

Also see: unsubscribe`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cik, err := model.NormalizeCIK(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("CIK", args[0]).Msg("invalid CIK")
		}

		var ticker string
		var monitored, confirmed bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ticker symbol (optional, left empty if blank)").
					Value(&ticker),
				huh.NewConfirm().
					Title("Should a healthchecks.io monitor be created for this subscription?").
					Value(&monitored),
			),
		)
		if err := form.Run(); err != nil {
			log.Fatal().Err(err).Msg("failed to create wizard")
		}
		ticker = model.NormalizeTicker(ticker)

		keyword := func(s string) string {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
		}
		summary := fmt.Sprintf("%s\n\nCIK: %s\nTicker: %s\nMonitored: %v\n",
			lipgloss.NewStyle().Bold(true).Render("NEW SUBSCRIPTION"), keyword(cik), keyword(ticker), monitored)
		fmt.Println(lipgloss.NewStyle().Width(60).BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).Padding(1, 2).Render(summary))

		confirmForm := huh.NewForm(huh.NewGroup(huh.NewConfirm().Title("Create subscription?").Value(&confirmed)))
		if err := confirmForm.Run(); err != nil {
			log.Fatal().Err(err).Msg("failed to create wizard")
		}
		if !confirmed {
			log.Info().Msg("not saving subscription")
			return
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		st := store.New(cfg.StorageDSN)
		if err := st.Connect(ctx, cfg.Database.PoolSize, cfg.Database.Timeout); err != nil {
			log.Fatal().Err(err).Msg("could not connect to store")
		}
		defer st.Close()

		if err := st.UpsertCompany(ctx, &model.Company{CIK: cik, Ticker: ticker}); err != nil {
			log.Fatal().Err(err).Msg("could not upsert company")
		}

		sub, err := st.Subscribe(ctx, cik, ticker)
		if err != nil {
			log.Fatal().Err(err).Msg("could not save subscription")
		}

		if monitored {
			checkSlug := slug.Make(fmt.Sprintf("edgaringest %s %s", cik, sub.ID.String()[:5]))
			if _, err := healthcheck.Create(fmt.Sprintf("edgaringest %s (%s)", cik, sub.ID.String()[:5]), checkSlug,
				[]string{"edgaringest"}, "0 6 * * 1-5"); err != nil {
				log.Warn().Err(err).Msg("creating healthcheck monitor failed; subscription was still saved")
			}
		}

		log.Info().Str("CIK", cik).Msg("subscription created")
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}
