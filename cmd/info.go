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

	"github.com/charmbracelet/lipgloss"
	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display row counts for the canonical store",
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

		summary, err := st.Summary(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not summarize store")
		}

		label := lipgloss.NewStyle().Bold(true).Width(24)
		value := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
		row := func(name string, n int64) string {
			return fmt.Sprintf("%s %s", label.Render(name), value.Render(fmt.Sprintf("%d", n)))
		}

		body := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s\n%s",
			row("Companies", summary.Companies),
			row("Subscriptions", summary.Subscriptions),
			row("Filings", summary.Filings),
			row("Facts", summary.Facts),
			row("Sections", summary.Sections),
			row("Chunks", summary.Chunks),
			row("Normalized metrics", summary.NormalizedMetrics),
		)

		fmt.Println(lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).Padding(1, 2).Render(body))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
