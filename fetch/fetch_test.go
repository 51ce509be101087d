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
package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "@")
		w.Write([]byte("hello filing"))
	}))
	defer server.Close()

	f := New(8, 16, 5*time.Second, "Test Suite test@example.com")
	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello filing", string(body))
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(8, 16, 5*time.Second, "Test Suite test@example.com")
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.Status)
}

func TestFetchToFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("filing bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "filing.htm")

	f := New(8, 16, 5*time.Second, "Test Suite test@example.com")
	require.NoError(t, f.FetchToFile(context.Background(), server.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "filing bytes", string(got))
}

func TestValidateUserAgent(t *testing.T) {
	assert.NoError(t, ValidateUserAgent("Research Tool admin@example.com"))
	assert.Error(t, ValidateUserAgent("short"))
	assert.Error(t, ValidateUserAgent("no contact address here"))
}

func TestFilingPath(t *testing.T) {
	got := FilingPath("/srv/edgaringest", "000032019324000123", "aapl-20240928.htm")
	assert.Equal(t, "/srv/edgaringest/data/filings/000032019324000123/aapl-20240928.htm", got)
}
