// Package aggregator reads the note column of payer master workbooks
// and accumulates per-payer category counts for a reporting period.
package aggregator

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nypeach/ps1c-d-analytics/internal/classifier"
	"github.com/nypeach/ps1c-d-analytics/internal/logging"
	"github.com/nypeach/ps1c-d-analytics/internal/models"
	"github.com/nypeach/ps1c-d-analytics/internal/normalizer"
	"github.com/nypeach/ps1c-d-analytics/internal/reporterror"
)

// NoteColumn is the header of the column holding reconciliation notes
// in every payer master file.
const NoteColumn = "NOTE"

// Aggregator accumulates category counts from groups of classified
// payer master files.
type Aggregator struct {
	logger logging.Logger
}

// New creates an Aggregator.
func New(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate counts the normalized note categories of every file in the
// group. A file that cannot be read or lacks the note column is logged
// and skipped; it never aborts the remaining files. The same function
// serves both monthly groups and the year-to-date union of groups, so
// YTD totals are always a fresh pass over the raw rows rather than a
// sum of monthly aggregates.
func (a *Aggregator) Aggregate(files []classifier.ClassifiedFile) *models.Counts {
	counts := models.NewCounts()

	for _, cf := range files {
		rows, unmapped, err := a.aggregateFile(cf, counts)
		if err != nil {
			a.logger.WithError(err).Warn("Skipping unreadable payer master file",
				logging.Field{Key: logging.FieldFile, Value: cf.Path})
			continue
		}
		a.logger.Debug("Aggregated payer master file",
			logging.Field{Key: logging.FieldFile, Value: cf.Path},
			logging.Field{Key: logging.FieldPayer, Value: cf.Payer},
			logging.Field{Key: logging.FieldCount, Value: rows},
			logging.Field{Key: "unmapped", Value: unmapped})
	}

	a.logger.Info("Aggregation complete",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "payers", Value: len(counts.Payers())},
		logging.Field{Key: "rows", Value: counts.Total()})

	return counts
}

// aggregateFile counts one file's rows into counts. The payer is taken
// from the classification, once per file. Returns the number of counted
// rows and how many of those carried an unmapped note.
func (a *Aggregator) aggregateFile(cf classifier.ClassifiedFile, counts *models.Counts) (counted, unmapped int, err error) {
	f, err := excelize.OpenFile(cf.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return 0, 0, &reporterror.MissingColumnError{File: cf.Path, Column: NoteColumn}
	}

	noteIdx := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), NoteColumn) {
			noteIdx = i
			break
		}
	}
	if noteIdx < 0 {
		return 0, 0, &reporterror.MissingColumnError{File: cf.Path, Column: NoteColumn}
	}

	for _, row := range rows[1:] {
		var raw string
		if noteIdx < len(row) {
			raw = row[noteIdx]
		}
		cat, ok := normalizer.Normalize(raw)
		if !ok {
			continue
		}
		if !normalizer.IsMapped(cat) {
			unmapped++
			a.logger.Debug("Counted row with unmapped note",
				logging.Field{Key: logging.FieldFile, Value: cf.Path},
				logging.Field{Key: logging.FieldCategory, Value: string(cat)})
		}
		counts.Add(cf.Payer, cat)
		counted++
	}

	return counted, unmapped, nil
}
