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
package xbrl

import (
	"encoding/xml"
	"testing"

	"github.com/finloom/edgaringest/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInstance = `<?xml version="1.0"?>
<xbrl xmlns:us-gaap="http://fasb.org/us-gaap/2024" xmlns:dei="http://xbrl.sec.gov/dei/2024">
  <context id="FY2024">
    <entity><identifier>0000320193</identifier></entity>
    <period><startDate>2024-01-01</startDate><endDate>2024-12-31</endDate></period>
  </context>
  <context id="AsOf2024">
    <entity><identifier>0000320193</identifier></entity>
    <period><instant>2024-12-31</instant></period>
  </context>
  <context id="FY2024-Segment">
    <entity>
      <identifier>0000320193</identifier>
      <segment>
        <explicitMember dimension="srt:ProductOrServiceAxis">us-gaap:ProductMember</explicitMember>
      </segment>
    </entity>
    <period><startDate>2024-01-01</startDate><endDate>2024-12-31</endDate></period>
  </context>
  <us-gaap:Revenues contextRef="FY2024" unitRef="USD" decimals="-6">391035000000</us-gaap:Revenues>
  <us-gaap:Assets contextRef="AsOf2024" unitRef="USD" decimals="-6">364980000000</us-gaap:Assets>
  <us-gaap:Revenues contextRef="FY2024-Segment" unitRef="USD" decimals="-6">120000000000</us-gaap:Revenues>
  <dei:EntityRegistrantName contextRef="FY2024">Apple Inc.</dei:EntityRegistrantName>
  <us-gaap:EmptyConcept contextRef="FY2024"></us-gaap:EmptyConcept>
  <us-gaap:BadContext contextRef="Missing">100</us-gaap:BadContext>
</xbrl>`

func TestExtractBuildsFactsFromInstance(t *testing.T) {
	facts, err := Extract([]byte(sampleInstance), "0000320193-24-000123", nil)
	require.NoError(t, err)

	byConcept := map[string][]model.Fact{}
	for _, f := range facts {
		byConcept[f.ConceptName] = append(byConcept[f.ConceptName], f)
	}

	require.Len(t, byConcept["us-gaap:Revenues"], 2)
	require.Len(t, byConcept["us-gaap:Assets"], 1)
	require.Len(t, byConcept["dei:EntityRegistrantName"], 1)

	assets := byConcept["us-gaap:Assets"][0]
	assert.Equal(t, model.PeriodInstant, assets.PeriodType)
	assert.Equal(t, 2024, assets.PeriodEnd.Year())
	assert.Nil(t, assets.PeriodStart)
	require.NotNil(t, assets.NumericValue)
	assert.True(t, assets.NumericValue.IsPositive())

	var dimensioned model.Fact
	for _, f := range byConcept["us-gaap:Revenues"] {
		if len(f.Dimensions) > 0 {
			dimensioned = f
		}
	}
	require.NotEmpty(t, dimensioned.Dimensions)
	assert.Equal(t, "us-gaap:ProductMember", dimensioned.Dimensions[0].Member)
	assert.False(t, dimensioned.Dimensions.IsConsolidated())

	revenue := byConcept["us-gaap:Revenues"][0]
	assert.Equal(t, model.PeriodDuration, revenue.PeriodType)
	require.NotNil(t, revenue.PeriodStart)
	assert.Equal(t, 1, int(revenue.PeriodStart.Month()))
}

func TestExtractSkipsEmptyAndUnresolvedContexts(t *testing.T) {
	facts, err := Extract([]byte(sampleInstance), "0000320193-24-000123", nil)
	require.NoError(t, err)

	for _, f := range facts {
		assert.NotEqual(t, "us-gaap:EmptyConcept", f.ConceptName)
		assert.NotEqual(t, "us-gaap:BadContext", f.ConceptName)
	}
}

func TestExtractTextValueFallback(t *testing.T) {
	facts, err := Extract([]byte(sampleInstance), "0000320193-24-000123", nil)
	require.NoError(t, err)

	var name *model.Fact
	for i := range facts {
		if facts[i].ConceptName == "dei:EntityRegistrantName" {
			name = &facts[i]
		}
	}
	require.NotNil(t, name)
	assert.Nil(t, name.NumericValue)
	require.NotNil(t, name.TextValue)
	assert.Equal(t, "Apple Inc.", *name.TextValue)
}

func TestNamespacePrefix(t *testing.T) {
	var name xml.Name
	assert.Equal(t, "us-gaap", namespacePrefix("http://fasb.org/us-gaap/2024", name))
	assert.Equal(t, "dei", namespacePrefix("http://xbrl.sec.gov/dei/2024", name))
	assert.Equal(t, "ifrs", namespacePrefix("http://xbrl.ifrs.org/taxonomy/2024", name))
	assert.Equal(t, "custom", namespacePrefix("", name))
	assert.Equal(t, "20240928", namespacePrefix("http://www.apple.com/20240928", name))
}

func TestIsStructuralElement(t *testing.T) {
	assert.True(t, isStructuralElement("context"))
	assert.True(t, isStructuralElement("segment"))
	assert.False(t, isStructuralElement("Revenues"))
}

const samplePresentationLinkbase = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:role="http://fasb.org/role/BalanceSheet">
    <link:loc xlink:type="locator" xlink:href="taxonomy.xsd#us-gaap_Assets" xlink:label="loc_Assets"/>
    <link:loc xlink:type="locator" xlink:href="taxonomy.xsd#us-gaap_AssetsCurrent" xlink:label="loc_AssetsCurrent"/>
    <link:loc xlink:type="locator" xlink:href="taxonomy.xsd#us-gaap_CashAndCashEquivalents" xlink:label="loc_Cash"/>
    <link:presentationArc xlink:type="arc" xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child" xlink:from="loc_Assets" xlink:to="loc_AssetsCurrent" order="1"/>
    <link:presentationArc xlink:type="arc" xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child" xlink:from="loc_AssetsCurrent" xlink:to="loc_Cash" order="1"/>
  </link:presentationLink>
</link:linkbase>`

func TestParsePresentationLinkbaseBuildsParentDepthLabel(t *testing.T) {
	nodes, err := ParsePresentationLinkbase([]byte(samplePresentationLinkbase))
	require.NoError(t, err)

	root := nodes["Assets"]
	assert.Equal(t, "", root.ParentConcept)
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, "Assets", root.Label)

	mid := nodes["AssetsCurrent"]
	assert.Equal(t, "Assets", mid.ParentConcept)
	assert.Equal(t, 1, mid.Depth)
	assert.Equal(t, "Assets Current", mid.Label)

	leaf := nodes["CashAndCashEquivalents"]
	assert.Equal(t, "AssetsCurrent", leaf.ParentConcept)
	assert.Equal(t, 2, leaf.Depth)
	assert.Equal(t, "Cash And Cash Equivalents", leaf.Label)
}

func TestExtractPopulatesPresentationFields(t *testing.T) {
	presentation, err := ParsePresentationLinkbase([]byte(samplePresentationLinkbase))
	require.NoError(t, err)

	facts, err := Extract([]byte(sampleInstance), "0000320193-24-000123", presentation)
	require.NoError(t, err)

	var assets *model.Fact
	for i := range facts {
		if facts[i].ConceptName == "us-gaap:Assets" {
			assets = &facts[i]
		}
	}
	require.NotNil(t, assets)
	assert.Equal(t, "", assets.ParentConcept)
	assert.Equal(t, 0, assets.Depth)
	assert.Equal(t, "Assets", assets.Label)
}

func TestHumanizeConceptLabel(t *testing.T) {
	assert.Equal(t, "Assets Current", humanizeConceptLabel("AssetsCurrent"))
	assert.Equal(t, "Revenues", humanizeConceptLabel("Revenues"))
}
