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

// Package normalize is the concept mapper (C9): it maps heterogeneous
// issuer-specific XBRL concepts onto the canonical metric catalog,
// grounded in the teacher's subscription-merge idiom of loading a rule
// table once and applying it per entity.
package normalize

import (
	"context"
	"fmt"
	"sort"

	"github.com/finloom/edgaringest/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Reader is the read surface normalize needs from the store.
type Reader interface {
	ConceptMappings(ctx context.Context) ([]model.ConceptMapping, error)
	FactsForAccession(ctx context.Context, accession string) ([]model.Fact, error)
	UpsertNormalizedMetric(ctx context.Context, v *model.NormalizedMetricValue) (bool, error)
}

// Mapper holds the concept mapping catalog, grouped by metric and sorted
// by priority ascending, loaded once per process lifetime (§4.9).
type Mapper struct {
	store Reader
	rules map[string][]model.ConceptMapping
}

// Load builds a Mapper, reading the full concept_mappings catalog.
func Load(ctx context.Context, store Reader) (*Mapper, error) {
	rows, err := store.ConceptMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("normalize: load concept mappings: %w", err)
	}

	rules := make(map[string][]model.ConceptMapping)
	for _, r := range rows {
		rules[r.MetricID] = append(rules[r.MetricID], r)
	}
	for metric := range rules {
		sort.Slice(rules[metric], func(i, j int) bool {
			return rules[metric][i].Priority < rules[metric][j].Priority
		})
	}

	return &Mapper{store: store, rules: rules}, nil
}

// NormalizeFiling implements §4.9: for each canonical metric, walk its
// priority-ordered mapping rules, scoped to industry when given, and
// persist the first rule that resolves a value.
func (m *Mapper) NormalizeFiling(ctx context.Context, accession, ticker string, industry *string) ([]model.NormalizedMetricValue, error) {
	facts, err := m.store.FactsForAccession(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("normalize: facts for %s: %w", accession, err)
	}
	if len(facts) == 0 {
		return nil, nil
	}

	byConcept := make(map[string][]model.Fact, len(facts))
	fiscalYear := 0
	for _, f := range facts {
		byConcept[f.ConceptName] = append(byConcept[f.ConceptName], f)
		if f.PeriodEnd.Year() > fiscalYear {
			fiscalYear = f.PeriodEnd.Year()
		}
	}
	if fiscalYear == 0 {
		return nil, nil
	}

	var out []model.NormalizedMetricValue
	for metricID, ruleset := range m.rules {
		value, ok := resolveMetric(ruleset, byConcept, industry)
		if !ok {
			continue
		}

		nv := model.NormalizedMetricValue{
			Ticker:          ticker,
			FiscalYear:      fiscalYear,
			MetricID:        metricID,
			Value:           value.value,
			SourceConcept:   value.concept,
			SourceAccession: accession,
			Confidence:      value.confidence,
		}

		written, err := m.store.UpsertNormalizedMetric(ctx, &nv)
		if err != nil {
			return nil, fmt.Errorf("normalize: upsert %s/%s: %w", ticker, metricID, err)
		}
		if !written {
			log.Debug().Str("Ticker", ticker).Str("Metric", metricID).Msg("normalize: lower-confidence candidate discarded")
			continue
		}
		out = append(out, nv)
	}

	return out, nil
}

type resolved struct {
	value      decimal.Decimal
	concept    string
	confidence decimal.Decimal
}

func resolveMetric(ruleset []model.ConceptMapping, byConcept map[string][]model.Fact, industry *string) (resolved, bool) {
	industryCode := ""
	if industry != nil {
		industryCode = *industry
	}

	for _, rule := range ruleset {
		if !rule.AppliesToIndustry(industryCode) {
			continue
		}

		candidates := byConcept[rule.ConceptName]
		if len(candidates) == 0 {
			continue
		}

		pick, ok := pickFact(candidates)
		if !ok {
			continue
		}

		return resolved{value: *pick.NumericValue, concept: rule.ConceptName, confidence: rule.BaselineConfidence}, true
	}
	return resolved{}, false
}

// pickFact implements §4.9's fact selection within one concept: prefer
// consolidated facts (fall back to all if none consolidated), drop
// text-only facts, then take the one with the latest period_end.
func pickFact(facts []model.Fact) (model.Fact, bool) {
	consolidated := make([]model.Fact, 0, len(facts))
	for _, f := range facts {
		if f.Dimensions.IsConsolidated() && f.NumericValue != nil {
			consolidated = append(consolidated, f)
		}
	}

	pool := consolidated
	if len(pool) == 0 {
		for _, f := range facts {
			if f.NumericValue != nil {
				pool = append(pool, f)
			}
		}
	}
	if len(pool) == 0 {
		return model.Fact{}, false
	}

	sort.Slice(pool, func(i, j int) bool { return pool[i].PeriodEnd.After(pool[j].PeriodEnd) })
	return pool[0], true
}
