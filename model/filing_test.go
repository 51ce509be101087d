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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormTypeIsAmendment(t *testing.T) {
	assert.True(t, Form10KA.IsAmendment())
	assert.True(t, Form10QA.IsAmendment())
	assert.False(t, Form10K.IsAmendment())
	assert.False(t, Form8K.IsAmendment())
}

func TestFilingValid(t *testing.T) {
	filingDate := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	before := filingDate.AddDate(0, -3, 0)
	ok := &Filing{AccessionNumber: "acc-1", FilingDate: filingDate, PeriodOfReport: &before}
	assert.NoError(t, ok.Valid())

	after := filingDate.AddDate(0, 1, 0)
	bad := &Filing{AccessionNumber: "acc-2", FilingDate: filingDate, PeriodOfReport: &after}
	err := bad.Valid()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "acc-2")

	noPeriod := &Filing{AccessionNumber: "acc-3", FilingDate: filingDate}
	assert.NoError(t, noPeriod.Valid())
}
