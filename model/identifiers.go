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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	accessionDashedRe   = regexp.MustCompile(`^\d{10}-\d{2}-\d{6}$`)
	accessionUndashedRe = regexp.MustCompile(`^\d{18}$`)
	cikDigitsRe         = regexp.MustCompile(`^\d+$`)
)

// NormalizeAccession converts an accession number to its canonical dashed
// form DDDDDDDDDD-YY-NNNNNN, accepting either the dashed form itself or the
// 18-digit undashed form EDGAR also emits.
func NormalizeAccession(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if accessionDashedRe.MatchString(raw) {
		return raw, nil
	}

	if accessionUndashedRe.MatchString(raw) {
		return fmt.Sprintf("%s-%s-%s", raw[0:10], raw[10:12], raw[12:18]), nil
	}

	return "", fmt.Errorf("model: %q is not a valid accession number", raw)
}

// AccessionUndashed strips the dashes from a canonical accession number,
// which is the form EDGAR uses in its archive directory paths.
func AccessionUndashed(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}

// NormalizeCIK left-pads a central index key to 10 digits. Non-digit input
// is rejected.
func NormalizeCIK(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "0")
	if raw == "" {
		raw = "0"
	}

	if !cikDigitsRe.MatchString(raw) {
		return "", fmt.Errorf("model: %q is not a valid CIK", raw)
	}

	if len(raw) > 10 {
		return "", fmt.Errorf("model: CIK %q exceeds 10 digits", raw)
	}

	return fmt.Sprintf("%010s", raw), nil
}

// CIKAsInt strips leading zeros from a normalized CIK, the form EDGAR uses
// in its archive directory paths.
func CIKAsInt(cik string) (int64, error) {
	return strconv.ParseInt(strings.TrimLeft(cik, "0"), 10, 64)
}

// NormalizeTicker upper-cases a ticker symbol.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
