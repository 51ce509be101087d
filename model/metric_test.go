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

func TestConceptMappingAppliesToIndustry(t *testing.T) {
	unscoped := &ConceptMapping{}
	assert.True(t, unscoped.AppliesToIndustry("software"))

	tech := "tech"
	scoped := &ConceptMapping{IndustryScope: &tech}
	assert.True(t, scoped.AppliesToIndustry("tech"))
	assert.False(t, scoped.AppliesToIndustry("retail"))
}

func TestNormalizedMetricValueSupersededBy(t *testing.T) {
	existing := &NormalizedMetricValue{Confidence: decimal.NewFromFloat(0.8)}

	assert.True(t, existing.SupersededBy(decimal.NewFromFloat(0.9)), "higher confidence supersedes")
	assert.True(t, existing.SupersededBy(decimal.NewFromFloat(0.8)), "equal confidence supersedes (ties go to the newer row)")
	assert.False(t, existing.SupersededBy(decimal.NewFromFloat(0.7)), "lower confidence must not supersede")
}
