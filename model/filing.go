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
	"time"

	"github.com/rs/zerolog"
)

// FormType enumerates the filing types the pipeline understands.
type FormType string

const (
	Form10K   FormType = "10-K"
	Form10KA  FormType = "10-K/A"
	Form10Q   FormType = "10-Q"
	Form10QA  FormType = "10-Q/A"
	Form8K    FormType = "8-K"
	FormOther FormType = "OTHER"
)

// IsAmendment reports whether the form type is an amendment to an earlier
// filing, the deciding factor in the latest-filing-per-period view (§4.6).
func (f FormType) IsAmendment() bool {
	switch f {
	case Form10KA, Form10QA:
		return true
	default:
		return false
	}
}

// DownloadStatus tracks where a filing is in the download lifecycle.
type DownloadStatus string

const (
	DownloadPending   DownloadStatus = "pending"
	DownloadCompleted DownloadStatus = "completed"
	DownloadFailed    DownloadStatus = "failed"
)

// Filing is one EDGAR submission, keyed by its canonical accession number.
type Filing struct {
	AccessionNumber  string         `db:"accession_number" json:"accession_number"`
	CIK              string         `db:"cik" json:"cik"`
	FormType         FormType       `db:"form_type" json:"form_type"`
	FilingDate       time.Time      `db:"filing_date" json:"filing_date"`
	PeriodOfReport   *time.Time     `db:"period_of_report" json:"period_of_report,omitempty"`
	AcceptanceDate   time.Time      `db:"acceptance_datetime" json:"acceptance_datetime"`
	HasXBRL          bool           `db:"has_xbrl" json:"has_xbrl"`
	StoragePath      string         `db:"storage_path" json:"storage_path"`
	DownloadStatus   DownloadStatus `db:"download_status" json:"download_status"`
	XBRLProcessed    bool           `db:"xbrl_processed" json:"xbrl_processed"`
	SectionsProcessed bool          `db:"sections_processed" json:"sections_processed"`
	MarkdownBody     string         `db:"markdown_body" json:"-"`
	WordCount        int            `db:"word_count" json:"word_count"`
	ProcessingErrors string         `db:"processing_errors" json:"processing_errors,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Valid checks the §3 invariant that the reporting period cannot be after
// the filing date, when both are known.
func (f *Filing) Valid() error {
	if f.PeriodOfReport != nil && f.PeriodOfReport.After(f.FilingDate) {
		return errInvalidPeriod(f.AccessionNumber)
	}
	return nil
}

func errInvalidPeriod(accession string) error {
	return &ValidationError{
		Field:   "period_of_report",
		Message: "period_of_report must not be after filing_date",
		Subject: accession,
	}
}

// MarshalZerologObject lets a Filing log itself as a structured event, the
// way the teacher's Asset does.
func (f *Filing) MarshalZerologObject(e *zerolog.Event) {
	e.Str("AccessionNumber", f.AccessionNumber)
	e.Str("CIK", f.CIK)
	e.Str("FormType", string(f.FormType))
	e.Time("FilingDate", f.FilingDate)
	e.Str("DownloadStatus", string(f.DownloadStatus))
	e.Bool("HasXBRL", f.HasXBRL)
	e.Bool("XBRLProcessed", f.XBRLProcessed)
	e.Bool("SectionsProcessed", f.SectionsProcessed)
}

// ValidationError reports a §3 schema-invariant violation.
type ValidationError struct {
	Field   string
	Message string
	Subject string
}

func (e *ValidationError) Error() string {
	return e.Subject + ": " + e.Field + ": " + e.Message
}
