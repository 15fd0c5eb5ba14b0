// Package normalizer maps the free-text reconciliation notes found in
// payer master files to the closed set of outcome categories the stats
// template reports on.
package normalizer

import (
	"strings"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

// excludedNotes are note values that are deliberately dropped from all
// counts. These mark rows the reconciliation team does not report on,
// as opposed to merely unmapped notes, which are counted.
var excludedNotes = map[string]struct{}{
	"Proliance Backup Timeout": {},
	"Batch Missing in NextGen": {},
}

// taxonomy is the exact-match mapping from a trimmed note value to its
// outcome category. Matching is case- and whitespace-sensitive after
// trimming; the reconciliation workflow enters these values from a
// fixed pick list, so fuzzier matching would hide data-entry drift.
var taxonomy = map[string]models.Category{
	"Balanced-Batch Closed":     models.CategoryBalanced,
	"Balanced-Batch Not Closed": models.CategoryBalanced,
	"Balanced":                  models.CategoryBalanced,

	"Not Balanced-PLAs":             models.CategoryNotBalancedExpected,
	"Not Balanced-Remit Exceptions": models.CategoryNotBalancedExpected,
	"Not Balanced-Expected":         models.CategoryNotBalancedExpected,

	"Reconciled-Post Option Grayed Out": models.CategoryNotBalancedReview,
	"Not Balanced-Review":               models.CategoryNotBalancedReview,
	"Not Balanced-TA Review":            models.CategoryNotBalancedReview,

	"Amkai": models.CategoryAmkai,
}

// Normalize maps a raw note value to its outcome category. ok is false
// when the row must be excluded from all counts: empty notes and the
// explicitly excluded values. Any other note that is not in the
// taxonomy is passed through verbatim as an unmapped category; it is
// counted but has no output column, so it never reaches the workbook.
//
// Normalize is a pure function. The pipeline is re-run idempotently
// over the same inputs, so determinism here is load-bearing.
func Normalize(raw string) (cat models.Category, ok bool) {
	note := strings.TrimSpace(raw)
	if note == "" {
		return "", false
	}
	if _, excluded := excludedNotes[note]; excluded {
		return "", false
	}
	if mapped, found := taxonomy[note]; found {
		return mapped, true
	}
	return models.Category(note), true
}

// IsMapped reports whether a category is one of the four with a
// dedicated output column.
func IsMapped(cat models.Category) bool {
	for _, known := range models.OutputCategories {
		if cat == known {
			return true
		}
	}
	return false
}
