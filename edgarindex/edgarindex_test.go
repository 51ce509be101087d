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
package edgarindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveIndexURLAndDocumentURL(t *testing.T) {
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/index.json",
		ArchiveIndexURL("0000320193", "0000320193-24-000123"))
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm",
		DocumentURL("0000320193", "0000320193-24-000123", "aapl-20240928.htm"))
}

func TestIsXBRLCandidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{"instance document", Document{Name: "aapl-20240928_htm.xml"}, false},
		{"filing summary", Document{Name: "FilingSummary.xml"}, false},
		{"schema file", Document{Name: "aapl-20240928.xsd"}, true},
		{"calculation linkbase", Document{Name: "aapl-20240928_cal.xml"}, true},
		{"primary html", Document{Name: "aapl-20240928.htm"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsXBRLCandidate(tt.doc))
		})
	}
}

func TestIsPresentationLinkbase(t *testing.T) {
	assert.True(t, IsPresentationLinkbase(Document{Name: "aapl-20240928_pre.xml"}))
	assert.False(t, IsPresentationLinkbase(Document{Name: "aapl-20240928_cal.xml"}))
	assert.False(t, IsPresentationLinkbase(Document{Name: "aapl-20240928.htm"}))
}

func TestPrimaryDocument(t *testing.T) {
	docs := []Document{
		{Name: "aapl-ex1001.htm", Type: "EX-10.1"},
		{Name: "aapl-20240928.htm", Type: "10-K"},
	}
	got, ok := PrimaryDocument(docs, "10-K")
	require.True(t, ok)
	assert.Equal(t, "aapl-20240928.htm", got.Name)

	_, ok = PrimaryDocument(nil, "10-K")
	assert.False(t, ok)
}

func TestParseIndex(t *testing.T) {
	body := []byte(`{"directory":{"item":[
		{"name":"aapl-20240928.htm","type":"10-K","last-modified":"2024-11-01"},
		{"name":"aapl-20240928_htm.xml","type":"EX-101.INS"}
	]}}`)

	docs, err := parseIndex(body)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "aapl-20240928.htm", docs[0].Name)
	assert.Equal(t, "10-K", docs[0].Type)

	_, err = parseIndex([]byte(`{}`))
	assert.Error(t, err)
}
