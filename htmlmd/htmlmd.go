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

// Package htmlmd converts an EDGAR filing's primary HTML document to
// markdown (C3), using html-to-markdown and goquery the way
// ternarybob-quaero wires them for its own HTML ingestion.
package htmlmd

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// qualityScoreWordBasis is the word count that maps to a QualityScore of
// 100 (§4.3: word_count / 50_000, clamped to [0, 100]).
const qualityScoreWordBasis = 50_000

// Result is the converted document plus a quality signal (§4.3).
type Result struct {
	// Markdown is the provenance header followed by PageList's pages,
	// rejoined.
	Markdown string

	// PageList holds each page's converted markdown in document order,
	// split at HTML page-break boundaries.
	PageList []string

	WordCount    int
	QualityScore float64
}

var sgmlWrapperRe = regexp.MustCompile(`(?is)<(?:SEC-DOCUMENT|SEC-HEADER|TYPE|SEQUENCE|FILENAME|DESCRIPTION)>[^\n]*\n`)

// stripSGMLWrapper removes the legacy SGML submission header EDGAR still
// prepends to many full-text submissions, which is not itself HTML and
// would otherwise leak into the converted markdown.
func stripSGMLWrapper(raw string) string {
	if idx := strings.Index(strings.ToUpper(raw), "<HTML>"); idx > 0 {
		raw = raw[idx:]
	}
	return sgmlWrapperRe.ReplaceAllString(raw, "")
}

// pageBreakRe finds EDGAR's usual page-break idiom: a block element whose
// inline style forces a page-break-before/after.
var pageBreakRe = regexp.MustCompile(`(?i)<[^>]+style="[^"]*page-break-(?:before|after)\s*:\s*always[^"]*"[^>]*>`)

// splitPages breaks cleaned document HTML into per-page fragments at
// page-break markers, folding each marker into the page that follows it.
func splitPages(html string) []string {
	locs := pageBreakRe.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return []string{html}
	}

	var pages []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			pages = append(pages, html[prev:loc[0]])
		}
		prev = loc[0]
	}
	pages = append(pages, html[prev:])
	return pages
}

// Convert turns raw filing HTML into markdown with a provenance header
// (§4.3: every converted document records the ticker and accession it came
// from), an ordered page list, and a quality score.
func Convert(rawHTML, ticker, accession string) (Result, error) {
	cleaned := stripSGMLWrapper(rawHTML)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return Result{}, fmt.Errorf("htmlmd: parse: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	html, err := doc.Html()
	if err != nil {
		return Result{}, fmt.Errorf("htmlmd: serialize: %w", err)
	}

	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())

	var pages []string
	for _, pageHTML := range splitPages(html) {
		body, err := conv.ConvertString(pageHTML)
		if err != nil {
			return Result{}, fmt.Errorf("htmlmd: convert: %w", err)
		}
		body = collapseBlankLines(body)
		if body == "" {
			continue
		}
		pages = append(pages, body)
	}
	if len(pages) == 0 {
		pages = []string{""}
	}

	wordCount := 0
	for _, p := range pages {
		wordCount += len(strings.Fields(p))
	}

	header := fmt.Sprintf("<!-- DOCUMENT: %s 10-K -->\n<!-- ACCESSION: %s -->\n\n", ticker, accession)

	return Result{
		Markdown:     header + strings.Join(pages, "\n\n"),
		PageList:     pages,
		WordCount:    wordCount,
		QualityScore: qualityScore(wordCount),
	}, nil
}

// qualityScore implements §4.3's word_count / 50_000 signal, scaled onto
// [0, 100] and clamped at both ends.
func qualityScore(wordCount int) float64 {
	score := float64(wordCount) / qualityScoreWordBasis * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(s string) string {
	return blankLinesRe.ReplaceAllString(strings.TrimSpace(s), "\n\n")
}
