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

// Package section implements the adaptive three-tier segmenter (C4):
// store lookup, then a regex sweep with a cross-reference resolver, then
// an optional pluggable Tier-3 Finder. Grounded in the teacher's
// provider package for the "try, fall through, record stats" shape.
package section

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/finloom/edgaringest/cache"
	"github.com/finloom/edgaringest/model"
)

// Finder is the optional Tier-3 collaborator (§6): an LLM or other
// out-of-process section locator. A nil Finder means Tier 3 is skipped.
type Finder interface {
	FindSection(ctx context.Context, fullMarkdown, item string) (string, bool, error)
}

// StoreLookup is the Tier-1 collaborator: existing persisted sections.
type StoreLookup interface {
	SectionByType(ctx context.Context, accession string, sectionType model.SectionType) (*model.Section, error)
}

// TierStats records which tier resolved each item, for observability.
type TierStats struct {
	Tier1, Tier2, Tier3, Unresolved int
}

// Segmenter partitions filing markdown into canonical items.
type Segmenter struct {
	store  StoreLookup
	finder Finder
	cache  cache.Cache
}

// New builds a Segmenter. store and finder may be nil to skip their tier;
// c defaults to cache.Noop{} when nil.
func New(store StoreLookup, finder Finder, c cache.Cache) *Segmenter {
	if c == nil {
		c = cache.Noop{}
	}
	return &Segmenter{store: store, finder: finder, cache: c}
}

type match struct {
	item  model.SectionType
	title string
	start int
}

var standardPatterns = map[model.SectionType]*regexp.Regexp{
	model.Item1:  regexp.MustCompile(`(?im)^\s*item\s*1\.?\s+business`),
	model.Item1A: regexp.MustCompile(`(?im)^\s*item\s*1a\.?\s+risk\s+factors`),
	model.Item1B: regexp.MustCompile(`(?im)^\s*item\s*1b\.?\s+unresolved\s+staff\s+comments`),
	model.Item2:  regexp.MustCompile(`(?im)^\s*item\s*2\.?\s+properties`),
	model.Item3:  regexp.MustCompile(`(?im)^\s*item\s*3\.?\s+legal\s+proceedings`),
	model.Item7:  regexp.MustCompile(`(?im)^\s*item\s*7\.?\s+management'?s?\s+discussion`),
	model.Item7A: regexp.MustCompile(`(?im)^\s*item\s*7a\.?\s+quantitative\s+and\s+qualitative`),
	model.Item8:  regexp.MustCompile(`(?im)^\s*item\s*8\.?\s+financial\s+statements`),
}

var narrativePatterns = map[model.SectionType]*regexp.Regexp{
	model.Item1A: regexp.MustCompile(`(?im)^\s*risk\s+factors\s*$`),
	model.Item1:  regexp.MustCompile(`(?im)^\s*(overview|business\s+overview)\s*$`),
}

// anyItemPattern finds the nearest subsequent heading-like boundary of any
// item, standard or narrative, used to close off the current section.
var anyItemPattern = regexp.MustCompile(`(?im)^\s*item\s*\d{1,2}[a-c]?\.?\s+\S`)

var crossRefHeading = regexp.MustCompile(`(?i)form\s*10-k\s*cross-reference\s*index`)

// Resolve returns the markdown slice for item within fullMarkdown, the
// tier that resolved it, and whether it was found at all. The full
// markdown is cached per accession (§4.4) so a caller that has already
// converted a filing once in this run can pass an empty fullMarkdown on
// later calls and let the cache supply it.
func (s *Segmenter) Resolve(ctx context.Context, accession string, item model.SectionType, fullMarkdown string) (string, int, bool) {
	if fullMarkdown == "" {
		if cached, ok := s.cache.Get(accession); ok {
			fullMarkdown = string(cached)
		}
	} else {
		s.cache.Set(accession, []byte(fullMarkdown))
	}

	// Tier 1: store lookup, accepted only past the 1000-char threshold so
	// a historically weak extraction does not lock in.
	if s.store != nil {
		if sec, err := s.store.SectionByType(ctx, accession, item); err == nil && sec != nil {
			if len(sec.MarkdownBody) > 1000 {
				return sec.MarkdownBody, 1, true
			}
		}
	}

	// Tier 2: regex sweep, with cross-reference resolution first.
	if body, ok := s.crossReferenceLookup(fullMarkdown, item); ok {
		return body, 2, true
	}
	if body, ok := s.regexSweep(fullMarkdown, item); ok {
		return applyIncorporatedByReferenceFallback(body, item, fullMarkdown), 2, true
	}

	// Tier 3: optional finder.
	if s.finder != nil {
		if body, found, err := s.finder.FindSection(ctx, fullMarkdown, string(item)); err == nil && found {
			return body, 3, true
		}
	}

	return "", 0, false
}

// ResolveAll runs Resolve for every canonical section, recording tier
// statistics for the whole filing.
func (s *Segmenter) ResolveAll(ctx context.Context, accession, fullMarkdown string) (map[model.SectionType]string, TierStats) {
	out := make(map[model.SectionType]string)
	var stats TierStats

	for _, item := range model.AllSections {
		body, tier, ok := s.Resolve(ctx, accession, item, fullMarkdown)
		switch {
		case !ok:
			stats.Unresolved++
		case tier == 1:
			stats.Tier1++
			out[item] = body
		case tier == 2:
			stats.Tier2++
			out[item] = body
		case tier == 3:
			stats.Tier3++
			out[item] = body
		}
	}
	return out, stats
}

func (s *Segmenter) regexSweep(fullMarkdown string, item model.SectionType) (string, bool) {
	var matches []match
	if re, ok := standardPatterns[item]; ok {
		for _, loc := range re.FindAllStringIndex(fullMarkdown, -1) {
			matches = append(matches, match{item: item, start: loc[0]})
		}
	}
	if re, ok := narrativePatterns[item]; ok {
		for _, loc := range re.FindAllStringIndex(fullMarkdown, -1) {
			matches = append(matches, match{item: item, start: loc[0]})
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	// Tie-break: earliest document position wins.
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
	start := matches[0].start

	// The heading pattern's leading \s* may start the match on a blank line
	// above the heading; trim it so rest[1:] skips into the heading itself.
	rest := strings.TrimLeft(fullMarkdown[start:], " \t\r\n")
	boundary := len(rest)
	if loc := anyItemPattern.FindStringIndex(rest[1:]); loc != nil {
		boundary = loc[0] + 1
	}

	body := strings.TrimSpace(rest[:boundary])
	if len(body) <= 15 {
		return "", false
	}
	return body, true
}

// applyIncorporatedByReferenceFallback implements the edge case: a short
// "Incorporated by reference" body for a people-type item falls back to
// Item 1.
func applyIncorporatedByReferenceFallback(body string, item model.SectionType, fullMarkdown string) string {
	if len(body) < 500 && strings.Contains(strings.ToLower(body), "incorporated by reference") {
		if item == model.Item10 || item == model.Item11 || item == model.Item12 {
			if alt, ok := (&Segmenter{}).regexSweep(fullMarkdown, model.Item1); ok {
				return alt
			}
		}
	}
	return body
}

// crossReferenceLookup parses a "Form 10-K Cross-Reference Index" table,
// when present, to learn this issuer's item -> section-title mapping,
// then locates the body by that title.
func (s *Segmenter) crossReferenceLookup(fullMarkdown string, item model.SectionType) (string, bool) {
	idx := crossRefHeading.FindStringIndex(fullMarkdown)
	if idx == nil {
		return "", false
	}

	tableRegion := fullMarkdown[idx[1]:]
	if end := anyItemPattern.FindStringIndex(tableRegion); end != nil && end[0] < 4000 {
		tableRegion = tableRegion[:end[0]]
	} else if len(tableRegion) > 4000 {
		tableRegion = tableRegion[:4000]
	}

	itemRowRe := regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(string(item)) + `\S*\s*[|.\-]*\s*(.+)$`)
	rowMatch := itemRowRe.FindStringSubmatch(tableRegion)
	if rowMatch == nil {
		return "", false
	}
	title := strings.TrimSpace(rowMatch[1])
	if title == "" {
		return "", false
	}

	titleRe := regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(title) + `\s*$`)
	loc := titleRe.FindStringIndex(fullMarkdown)
	if loc == nil {
		return "", false
	}

	rest := fullMarkdown[loc[0]:]
	boundary := len(rest)
	if end := anyItemPattern.FindStringIndex(rest[1:]); end != nil {
		boundary = end[0] + 1
	}
	body := strings.TrimSpace(rest[:boundary])
	if len(body) <= 15 {
		return "", false
	}
	return body, true
}

// NoopFinder is the default Tier-3 collaborator when no LLM is configured:
// it always reports "not found" (§4.4, §6).
type NoopFinder struct{}

func (NoopFinder) FindSection(_ context.Context, _, _ string) (string, bool, error) {
	return "", false, nil
}
