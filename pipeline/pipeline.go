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

// Package pipeline is the orchestrator (C0): it sequences the fetcher,
// index resolver, converter, segmenter, extractor, staging manager, and
// merge coordinator for one filing, grounded in the teacher's cmd/run.go
// subscription-execution loop.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/finloom/edgaringest/backblaze"
	"github.com/finloom/edgaringest/chunker"
	"github.com/finloom/edgaringest/edgarindex"
	"github.com/finloom/edgaringest/fetch"
	"github.com/finloom/edgaringest/htmlmd"
	"github.com/finloom/edgaringest/merge"
	"github.com/finloom/edgaringest/model"
	"github.com/finloom/edgaringest/section"
	"github.com/finloom/edgaringest/staging"
	"github.com/finloom/edgaringest/store"
	"github.com/finloom/edgaringest/xbrl"
	"github.com/rs/zerolog/log"
)

// Pipeline wires every component needed to ingest one filing end to end.
type Pipeline struct {
	Fetcher   *fetch.Fetcher
	Store     *store.Store
	Staging   *staging.Manager
	Merge     *merge.Coordinator
	Segmenter *section.Segmenter
	Chunker   chunker.Config

	// BackupBucket, when non-empty, archives each filing's primary document
	// to Backblaze B2 after a successful fetch. A failed archive is logged
	// but never fails the ingestion.
	BackupBucket string
}

// Result summarizes the outcome of ingesting one filing, matching §9's
// explicit RunOutcome redesign note.
type Result struct {
	Accession string
	Outcome   model.RunOutcome
	Facts     int
	Sections  int
	Chunks    int
	Error     error
}

// IngestFiling runs C1 through C8 for a single filing, then returns a
// Result the caller can log or persist as a ProcessingLog row.
func (p *Pipeline) IngestFiling(ctx context.Context, company model.Company, accession string, formType model.FormType, filingDate time.Time, docs []edgarindex.Document, runID string) Result {
	logger := log.With().Str("Accession", accession).Str("CIK", company.CIK).Logger()

	primary, ok := edgarindex.PrimaryDocument(docs, string(formType))
	if !ok {
		return Result{Accession: accession, Outcome: model.RunFailed, Error: fmt.Errorf("pipeline: no primary document for %s", accession)}
	}

	rawHTML, err := p.Fetcher.Fetch(ctx, edgarindex.DocumentURL(company.CIK, accession, primary.Name))
	if err != nil {
		return Result{Accession: accession, Outcome: model.RunFailed, Error: fmt.Errorf("pipeline: fetch primary document: %w", err)}
	}

	if p.BackupBucket != "" {
		if err := backblaze.ArchiveFiling(company.CIK, accession, primary.Name, rawHTML, p.BackupBucket); err != nil {
			logger.Warn().Err(err).Msg("pipeline: filing archive failed")
		}
	}

	converted, err := htmlmd.Convert(string(rawHTML), company.Ticker, accession)
	if err != nil {
		return Result{Accession: accession, Outcome: model.RunFailed, Error: fmt.Errorf("pipeline: convert html: %w", err)}
	}

	sectionsTbl := staging.TableName("sections", runID)
	sectionMap, _ := p.Segmenter.ResolveAll(ctx, accession, converted.Markdown)

	sectionsWritten := 0
	for sectionType, body := range sectionMap {
		sec := &model.Section{
			AccessionNumber: accession,
			SectionType:     sectionType,
			MarkdownBody:    body,
			WordCount:       countWords(body),
		}
		if err := store.InsertSectionInto(ctx, p.Store.Pool(), sectionsTbl, sec); err != nil {
			logger.Warn().Err(err).Str("Section", string(sectionType)).Msg("pipeline: failed staging section")
			continue
		}
		sectionsWritten++
	}

	var presentation map[string]xbrl.PresentationInfo
	for _, doc := range docs {
		if !edgarindex.IsPresentationLinkbase(doc) {
			continue
		}
		raw, err := p.Fetcher.Fetch(ctx, edgarindex.DocumentURL(company.CIK, accession, doc.Name))
		if err != nil {
			logger.Warn().Err(err).Str("Document", doc.Name).Msg("pipeline: failed fetching presentation linkbase")
			break
		}
		presentation, err = xbrl.ParsePresentationLinkbase(raw)
		if err != nil {
			logger.Warn().Err(err).Str("Document", doc.Name).Msg("pipeline: failed parsing presentation linkbase")
			presentation = nil
		}
		break
	}

	factsTbl := staging.TableName("facts", runID)
	factsWritten := 0
	for _, doc := range docs {
		if !edgarindex.IsXBRLCandidate(doc) {
			continue
		}
		raw, err := p.Fetcher.Fetch(ctx, edgarindex.DocumentURL(company.CIK, accession, doc.Name))
		if err != nil {
			logger.Warn().Err(err).Str("Document", doc.Name).Msg("pipeline: failed fetching xbrl document")
			continue
		}
		facts, err := xbrl.Extract(raw, accession, presentation)
		if err != nil {
			logger.Warn().Err(err).Str("Document", doc.Name).Msg("pipeline: failed extracting xbrl facts")
			continue
		}
		for i := range facts {
			if err := store.InsertFactInto(ctx, p.Store.Pool(), factsTbl, &facts[i]); err != nil {
				continue
			}
			factsWritten++
		}
	}

	chunksTbl := staging.TableName("chunks", runID)
	chunksWritten := 0
	for sectionType, body := range sectionMap {
		chunks := chunker.Chunk(accession, string(sectionType), company.Ticker, formType, filingDate, body, p.Chunker)
		for i := range chunks {
			if err := store.InsertChunkInto(ctx, p.Store.Pool(), chunksTbl, &chunks[i]); err != nil {
				continue
			}
			chunksWritten++
		}
	}

	mergeResult := p.Merge.MergeFiling(ctx, runID, accession)
	if mergeResult.Error != nil {
		return Result{Accession: accession, Outcome: model.RunFailed, Error: mergeResult.Error}
	}

	outcome := model.RunSucceeded
	if sectionsWritten < len(model.RequiredSections) || factsWritten == 0 {
		outcome = model.RunPartial
	}
	for _, required := range model.RequiredSections {
		if _, ok := sectionMap[required]; !ok {
			outcome = model.RunPartial
		}
	}

	return Result{
		Accession: accession,
		Outcome:   outcome,
		Facts:     mergeResult.FactsMerged,
		Sections:  mergeResult.SectionsMerged,
		Chunks:    mergeResult.ChunksMerged,
	}
}

func countWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		isSpace := r == ' ' || r == '\n' || r == '\t' || r == '\r'
		if !isSpace && !inWord {
			count++
		}
		inWord = !isSpace
	}
	return count
}
