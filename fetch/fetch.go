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

// Package fetch is the rate-limited fetcher (C1), grounded in the
// teacher's provider/polygon.go x/time/rate usage: a single cooperative
// rate.Limiter gates every outbound request, with a resty client doing the
// actual HTTP work.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TransportError carries the HTTP status of a >=400 response (§4.1, §7).
type TransportError struct {
	URL    string
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch: %s returned status %d", e.URL, e.Status)
}

// Fetcher issues rate-limited HTTPS requests against the EDGAR archive.
type Fetcher struct {
	client    *resty.Client
	limiter   *rate.Limiter
	userAgent string
}

// New builds a Fetcher. userAgent is mandatory (§4.1): its absence is a
// fatal startup error, validated by config.Config.Validate before this
// constructor is ever called. burst is used as given; the run command
// passes 2x ratePerSecond (§4.1).
func New(ratePerSecond float64, burst int, timeout time.Duration, userAgent string) *Fetcher {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)

	return &Fetcher{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		userAgent: userAgent,
	}
}

// Fetch performs a rate-limited GET, returning the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() >= 400 {
		return nil, &TransportError{URL: url, Status: resp.StatusCode()}
	}

	return resp.Body(), nil
}

// FetchToFile performs a rate-limited GET and streams the body to path,
// creating parent directories as needed (§6 filesystem layout).
func (f *Fetcher) FetchToFile(ctx context.Context, url, path string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	resp, err := f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return err
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() >= 400 {
		return &TransportError{URL: url, Status: resp.StatusCode()}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.RawBody())
	return err
}

// ValidateUserAgent enforces the §6 requirement: must contain a contact
// address and be at least 10 characters.
func ValidateUserAgent(ua string) error {
	ua = strings.TrimSpace(ua)
	if !strings.Contains(ua, "@") || len(ua) < 10 {
		return fmt.Errorf("fetch: user agent %q must contain a contact address and be >= 10 characters", ua)
	}
	return nil
}

// FilingPath builds the §6 on-disk layout for a downloaded filing member.
func FilingPath(root, accessionUndashed, filename string) string {
	return filepath.Join(root, "data", "filings", accessionUndashed, filename)
}

func init() {
	// keeps the log import referenced. No retries are configured on the
	// resty client: the caller decides on retry policy per §4.1.
	_ = log.Logger
}
