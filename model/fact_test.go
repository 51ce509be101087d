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
package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDimensionsCanonical(t *testing.T) {
	a := Dimensions{{Axis: "srt:ProductOrServiceAxis", Member: "iPhone"}, {Axis: "us-gaap:StatementGeographicalAxis", Member: "US"}}
	b := Dimensions{{Axis: "us-gaap:StatementGeographicalAxis", Member: "US"}, {Axis: "srt:ProductOrServiceAxis", Member: "iPhone"}}

	assert.Equal(t, a.Canonical(), b.Canonical(), "member order must not affect the canonical string")
	assert.Empty(t, Dimensions{}.Canonical())
}

func TestDimensionsIsConsolidated(t *testing.T) {
	assert.True(t, Dimensions(nil).IsConsolidated())
	assert.True(t, Dimensions{}.IsConsolidated())
	assert.False(t, Dimensions{{Axis: "a", Member: "b"}}.IsConsolidated())
}

func TestFactEmpty(t *testing.T) {
	empty := &Fact{}
	assert.True(t, empty.Empty())

	num := decimal.NewFromInt(100)
	withNumber := &Fact{NumericValue: &num}
	assert.False(t, withNumber.Empty())

	text := "some label"
	withText := &Fact{TextValue: &text}
	assert.False(t, withText.Empty())

	blankText := ""
	withBlankText := &Fact{TextValue: &blankText}
	assert.True(t, withBlankText.Empty())
}

func TestFactWithinSanityBound(t *testing.T) {
	within := decimal.NewFromInt(1_000_000_000)
	f := &Fact{NumericValue: &within}
	assert.True(t, f.WithinSanityBound())

	tooBig := decimal.New(1, 16)
	f2 := &Fact{NumericValue: &tooBig}
	assert.False(t, f2.WithinSanityBound())

	assert.True(t, (&Fact{}).WithinSanityBound(), "no numeric value is trivially within bound")
}

func TestFactDeriveIsCustom(t *testing.T) {
	tests := []struct {
		name    string
		concept string
		want    bool
	}{
		{"us-gaap standard concept", "us-gaap:Assets", false},
		{"dei standard concept", "dei:EntityRegistrantName", false},
		{"issuer-specific extension", "aapl:DeferredCostsCurrent", true},
		{"missing namespace", "SomeConcept", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Fact{ConceptName: tt.concept}
			f.DeriveIsCustom()
			assert.Equal(t, tt.want, f.IsCustom)
		})
	}
}
