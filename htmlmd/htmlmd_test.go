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
package htmlmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripSGMLWrapper(t *testing.T) {
	raw := "<SEC-DOCUMENT>0000320193-24-000123.txt\n<TYPE>10-K\n<HTML><body>content</body></HTML>"
	got := stripSGMLWrapper(raw)
	assert.Equal(t, "<HTML><body>content</body></HTML>", got)
}

func TestConvert(t *testing.T) {
	html := `<html><head><style>.x{}</style><script>alert(1)</script></head>
<body><h1>Item 1. Business</h1><p>` + strings.Repeat("word ", 250) + `</p></body></html>`

	result, err := Convert(html, "AAPL", "0000320193-24-000123")
	require.NoError(t, err)

	assert.Contains(t, result.Markdown, "<!-- DOCUMENT: AAPL 10-K -->")
	assert.Contains(t, result.Markdown, "<!-- ACCESSION: 0000320193-24-000123 -->")
	assert.Contains(t, result.Markdown, "# Item 1. Business")
	assert.NotContains(t, result.Markdown, "alert(1)")
	assert.Greater(t, result.WordCount, 200)
	assert.Len(t, result.PageList, 1)
}

func TestConvertQualityScoreScalesAndClamps(t *testing.T) {
	short := `<html><body><p>too short</p></body></html>`
	result, err := Convert(short, "AAPL", "0000320193-24-000123")
	require.NoError(t, err)
	assert.Less(t, result.QualityScore, 1.0)
	assert.GreaterOrEqual(t, result.QualityScore, 0.0)

	long := `<html><body><p>` + strings.Repeat("word ", 60_000) + `</p></body></html>`
	result, err = Convert(long, "AAPL", "0000320193-24-000123")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.QualityScore)
}

func TestConvertSplitsPagesOnPageBreakMarkers(t *testing.T) {
	html := `<html><body>` +
		`<div>page one content</div>` +
		`<div style="page-break-before: always">page two content</div>` +
		`</body></html>`

	result, err := Convert(html, "AAPL", "0000320193-24-000123")
	require.NoError(t, err)

	require.Len(t, result.PageList, 2)
	assert.Contains(t, result.PageList[0], "page one content")
	assert.Contains(t, result.PageList[1], "page two content")
}

func TestCollapseBlankLines(t *testing.T) {
	got := collapseBlankLines("a\n\n\n\n\nb")
	assert.Equal(t, "a\n\nb", got)
}
