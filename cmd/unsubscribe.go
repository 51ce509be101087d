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
	"github.com/finloom/edgaringest/config"
	"github.com/finloom/edgaringest/model"
	"github.com/finloom/edgaringest/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var deleteSubscription bool

// unsubscribeCmd represents the unsubscribe command
var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <cik...>",
	Short: "Stop tracking one or more companies",
	Args:  cobra.MinimumNArgs(1),
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

		action := "de-activate"
		if deleteSubscription {
			action = "delete"
		}

		for _, rawCIK := range args {
			cik, err := model.NormalizeCIK(rawCIK)
			if err != nil {
				log.Error().Err(err).Str("CIK", rawCIK).Msg("skipping invalid CIK")
				continue
			}

			confirmed := false
			confirmForm := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Are you sure you want to %s the subscription for CIK %s?", action, cik)).
						Value(&confirmed),
				),
			)
			if err := confirmForm.Run(); err != nil {
				log.Fatal().Err(err).Msg("failed to create wizard")
			}

			if !confirmed {
				fmt.Printf("Ok, we won't %s %s\n", action, cik)
				continue
			}

			if deleteSubscription {
				if err := st.DeleteSubscription(ctx, cik); err != nil {
					log.Error().Err(err).Str("CIK", cik).Msg("could not delete subscription")
					continue
				}
			} else {
				if err := st.Unsubscribe(ctx, cik); err != nil {
					log.Error().Err(err).Str("CIK", cik).Msg("could not de-activate subscription")
					continue
				}
			}

			log.Info().Str("CIK", cik).Str("Action", action).Msg("subscription updated")
		}
	},
}

func init() {
	rootCmd.AddCommand(unsubscribeCmd)
	unsubscribeCmd.Flags().BoolVarP(&deleteSubscription, "delete", "d", false,
		"delete the subscription row outright instead of de-activating it; ingested data is kept")
}
