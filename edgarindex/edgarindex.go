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

// Package edgarindex resolves a filing's index JSON and the document URLs
// inside it (C2). Grounded in provider/polygon.go's gjson usage for
// ad-hoc JSON traversal of responses not worth a struct.
package edgarindex

import (
	"context"
	"fmt"
	"strings"

	"github.com/finloom/edgaringest/fetch"
	"github.com/finloom/edgaringest/model"
	"github.com/tidwall/gjson"
)

// Document is one file referenced by a filing's index.json.
type Document struct {
	Name        string
	Type        string
	Description string
}

// IndexURL builds the EDGAR browse-edgar company page URL for cik, with the
// undashed accession number as a query parameter.
func IndexURL(cik, accession string) string {
	undashed := model.AccessionUndashed(accession)
	return fmt.Sprintf("https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&accession=%s", cik, undashed)
}

// ArchiveIndexURL builds the JSON index URL under the EDGAR Archives tree,
// the one actually fetched by Resolve.
func ArchiveIndexURL(cik, accession string) string {
	undashed := model.AccessionUndashed(accession)
	cikTrimmed := strings.TrimLeft(cik, "0")
	if cikTrimmed == "" {
		cikTrimmed = "0"
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/index.json", cikTrimmed, undashed)
}

// DocumentURL builds the download URL for a single document inside an
// accession's directory.
func DocumentURL(cik, accession, filename string) string {
	undashed := model.AccessionUndashed(accession)
	cikTrimmed := strings.TrimLeft(cik, "0")
	if cikTrimmed == "" {
		cikTrimmed = "0"
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s", cikTrimmed, undashed, filename)
}

// Resolve fetches and parses an accession's index.json, returning every
// document entry (§4.2).
func Resolve(ctx context.Context, f *fetch.Fetcher, cik, accession string) ([]Document, error) {
	body, err := f.Fetch(ctx, ArchiveIndexURL(cik, accession))
	if err != nil {
		return nil, fmt.Errorf("edgarindex: resolve %s/%s: %w", cik, accession, err)
	}

	docs, err := parseIndex(body)
	if err != nil {
		return nil, fmt.Errorf("edgarindex: %s/%s: %w", cik, accession, err)
	}
	return docs, nil
}

// parseIndex extracts the directory.item array out of an index.json body,
// the gjson traversal step Resolve wraps around an HTTP fetch.
func parseIndex(body []byte) ([]Document, error) {
	items := gjson.GetBytes(body, "directory.item")
	if !items.Exists() {
		return nil, fmt.Errorf("no directory.item in index")
	}

	var docs []Document
	items.ForEach(func(_, item gjson.Result) bool {
		docs = append(docs, Document{
			Name:        item.Get("name").String(),
			Type:        item.Get("type").String(),
			Description: item.Get("last-modified").String(),
		})
		return true
	})
	return docs, nil
}

// IsXBRLCandidate filters the index to files relevant to C5 extraction:
// XML or XSD, excluding the rendered *_htm.xml duplicate and the
// FilingSummary.xml manifest (§4.2 edge case).
func IsXBRLCandidate(d Document) bool {
	name := strings.ToLower(d.Name)
	if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".xsd") {
		return false
	}
	if strings.HasSuffix(name, "_htm.xml") {
		return false
	}
	if name == "filingsummary.xml" {
		return false
	}
	return true
}

// IsPresentationLinkbase reports whether d is a filing's presentation
// linkbase (the "_pre.xml" artifact §4.5 draws parent_concept/depth/label
// from).
func IsPresentationLinkbase(d Document) bool {
	return strings.HasSuffix(strings.ToLower(d.Name), "_pre.xml")
}

// PrimaryDocument picks the main filing document (the 10-K/10-Q/8-K HTML
// body) out of an index's documents, preferring the entry whose type
// matches the expected form.
func PrimaryDocument(docs []Document, formType string) (Document, bool) {
	for _, d := range docs {
		if strings.EqualFold(d.Type, formType) && strings.HasSuffix(strings.ToLower(d.Name), ".htm") {
			return d, true
		}
	}
	for _, d := range docs {
		name := strings.ToLower(d.Name)
		if strings.HasSuffix(name, ".htm") && !strings.Contains(name, "ex") {
			return d, true
		}
	}
	return Document{}, false
}
