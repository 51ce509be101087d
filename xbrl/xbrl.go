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

// Package xbrl extracts Fact rows from an XBRL instance document (C5).
// Uses stdlib encoding/xml: none of the teacher's or pack's dependencies
// offer an XBRL-aware parser, and the instance documents are plain XML,
// so the standard decoder is the right tool — see DESIGN.md.
package xbrl

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finloom/edgaringest/model"
	"github.com/shopspring/decimal"
)

type xmlContext struct {
	ID       string `xml:"id,attr"`
	Instant  string `xml:"period>instant"`
	StartDt  string `xml:"period>startDate"`
	EndDt    string `xml:"period>endDate"`
	Segment  xmlSegment `xml:"entity>segment"`
}

type xmlSegment struct {
	Members []xmlMember `xml:"explicitMember"`
}

type xmlMember struct {
	Dimension string `xml:"dimension,attr"`
	Value     string `xml:",chardata"`
}

func (c xmlContext) periodEnd() (time.Time, model.PeriodType, time.Time, bool) {
	layout := "2006-01-02"
	if c.Instant != "" {
		t, err := time.Parse(layout, c.Instant)
		if err != nil {
			return time.Time{}, "", time.Time{}, false
		}
		return t, model.PeriodInstant, time.Time{}, true
	}
	if c.EndDt != "" {
		end, err := time.Parse(layout, c.EndDt)
		if err != nil {
			return time.Time{}, "", time.Time{}, false
		}
		start, _ := time.Parse(layout, c.StartDt)
		return end, model.PeriodDuration, start, true
	}
	return time.Time{}, "", time.Time{}, false
}

func (c xmlContext) dimensions() model.Dimensions {
	if len(c.Segment.Members) == 0 {
		return nil
	}
	dims := make(model.Dimensions, 0, len(c.Segment.Members))
	for _, m := range c.Segment.Members {
		dims = append(dims, model.DimensionMember{
			Axis:   strings.TrimSpace(m.Dimension),
			Member: strings.TrimSpace(m.Value),
		})
	}
	return dims
}

// Extract walks the raw instance XML token stream, building one Fact per
// element that carries a contextRef naming a parsed context; structural
// elements (context, unit, period and the like) are skipped by local
// name. presentation, when non-nil, supplies each fact's
// parent_concept/depth/label from a parsed presentation linkbase (§4.5); a
// nil map leaves those three fields at their zero value.
func Extract(raw []byte, accession string, presentation map[string]PresentationInfo) ([]model.Fact, error) {
	contexts, err := parseContexts(raw)
	if err != nil {
		return nil, fmt.Errorf("xbrl: parse contexts: %w", err)
	}

	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var facts []model.Fact

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if isStructuralElement(start.Name.Local) {
			continue
		}

		contextRef := attr(start, "contextRef")
		if contextRef == "" {
			continue
		}
		ctx, ok := contexts[contextRef]
		if !ok {
			continue
		}

		var charData string
		if err := decoder.DecodeElement(&charData, &start); err != nil {
			continue
		}
		charData = strings.TrimSpace(charData)

		fact, ok := buildFact(accession, start, ctx, charData, presentation)
		if !ok {
			continue // rejection rule: neither value present
		}
		facts = append(facts, fact)
	}

	return facts, nil
}

func buildFact(accession string, start xml.StartElement, ctx xmlContext, charData string, presentation map[string]PresentationInfo) (model.Fact, bool) {
	periodEnd, periodType, periodStart, ok := ctx.periodEnd()
	if !ok {
		return model.Fact{}, false
	}

	namespace := namespacePrefix(start.Name.Space, start.Name)
	conceptName := namespace + ":" + start.Name.Local

	f := model.Fact{
		AccessionNumber: accession,
		ConceptName:     conceptName,
		Unit:            attr(start, "unitRef"),
		PeriodEnd:       periodEnd,
		PeriodType:      periodType,
		Dimensions:      ctx.dimensions(),
		IsNegated:       attr(start, "sign") == "-",
	}
	if periodType == model.PeriodDuration && !periodStart.IsZero() {
		f.PeriodStart = &periodStart
	}
	// decimals="INF" (exact value) leaves Decimals nil.
	if d, err := strconv.Atoi(attr(start, "decimals")); err == nil {
		f.Decimals = &d
	}
	f.DeriveIsCustom()

	if info, ok := presentation[start.Name.Local]; ok {
		f.ParentConcept = info.ParentConcept
		f.Depth = info.Depth
		f.Label = info.Label
	}

	if charData == "" {
		return model.Fact{}, false
	}
	if dec, err := decimal.NewFromString(charData); err == nil {
		f.NumericValue = &dec
	} else {
		f.TextValue = &charData
	}

	if f.Empty() {
		return model.Fact{}, false
	}
	return f, true
}

func isStructuralElement(local string) bool {
	switch local {
	case "xbrl", "context", "unit", "schemaRef", "entity", "period", "segment",
		"explicitMember", "identifier", "startDate", "endDate", "instant":
		return true
	}
	return false
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func namespacePrefix(space string, name xml.Name) string {
	lower := strings.ToLower(space)
	switch {
	case strings.Contains(lower, "us-gaap"):
		return "us-gaap"
	case strings.Contains(lower, "dei"):
		return "dei"
	case strings.Contains(lower, "ifrs"):
		return "ifrs"
	case space == "":
		return "custom"
	default:
		return lastSegment(space)
	}
}

func lastSegment(uri string) string {
	uri = strings.TrimRight(uri, "/")
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

// PresentationInfo is one concept's position in a presentation linkbase
// tree: its immediate parent concept, its depth from the tree's root (0 for
// a root concept), and a human-readable label derived from its own local
// name (no separate label linkbase is parsed — see DESIGN.md).
type PresentationInfo struct {
	ParentConcept string
	Depth         int
	Label         string
}

type xmlPresentationLinkbase struct {
	Links []xmlPresentationLink `xml:"presentationLink"`
}

type xmlPresentationLink struct {
	Locators []xmlLocator `xml:"loc"`
	Arcs     []xmlArc     `xml:"presentationArc"`
}

type xmlLocator struct {
	Label string `xml:"label,attr"`
	Href  string `xml:"href,attr"`
}

type xmlArc struct {
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
}

// ParsePresentationLinkbase reads a filing's *_pre.xml presentation
// linkbase and returns, per concept local name, its parent/depth/label in
// the presentation tree (§4.5). Concepts appearing in more than one
// presentationLink keep the shallowest depth seen.
func ParsePresentationLinkbase(raw []byte) (map[string]PresentationInfo, error) {
	var doc xmlPresentationLinkbase
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("xbrl: parse presentation linkbase: %w", err)
	}

	out := make(map[string]PresentationInfo)
	for _, link := range doc.Links {
		locToConcept := make(map[string]string, len(link.Locators))
		for _, loc := range link.Locators {
			locToConcept[loc.Label] = conceptLocalFromHref(loc.Href)
		}

		children := make(map[string][]string)
		isChild := make(map[string]bool, len(link.Arcs))
		for _, arc := range link.Arcs {
			children[arc.From] = append(children[arc.From], arc.To)
			isChild[arc.To] = true
		}

		var walk func(label string, depth int, parentConcept string)
		walk = func(label string, depth int, parentConcept string) {
			concept, ok := locToConcept[label]
			if !ok || concept == "" {
				return
			}
			if existing, seen := out[concept]; !seen || depth < existing.Depth {
				out[concept] = PresentationInfo{
					ParentConcept: parentConcept,
					Depth:         depth,
					Label:         humanizeConceptLabel(concept),
				}
			}
			for _, child := range children[label] {
				walk(child, depth+1, concept)
			}
		}

		for _, loc := range link.Locators {
			if !isChild[loc.Label] {
				walk(loc.Label, 0, "")
			}
		}
	}
	return out, nil
}

// conceptLocalFromHref pulls the concept's local name out of a locator's
// xlink:href, e.g. "taxonomy.xsd#us-gaap_AssetsCurrent" -> "AssetsCurrent".
func conceptLocalFromHref(href string) string {
	frag := href
	if idx := strings.LastIndex(href, "#"); idx >= 0 {
		frag = href[idx+1:]
	}
	if idx := strings.Index(frag, "_"); idx >= 0 {
		return frag[idx+1:]
	}
	return frag
}

// humanizeConceptLabel turns a CamelCase concept local name into a
// space-separated label, e.g. "AssetsCurrent" -> "Assets Current".
func humanizeConceptLabel(local string) string {
	runes := []rune(local)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && isUpper(r) && (isLower(runes[i-1]) || isDigit(runes[i-1])) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func parseContexts(raw []byte) (map[string]xmlContext, error) {
	var doc struct {
		Contexts []xmlContext `xml:"context"`
	}
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]xmlContext, len(doc.Contexts))
	for _, c := range doc.Contexts {
		out[c.ID] = c
	}
	return out, nil
}
