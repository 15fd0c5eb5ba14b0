// Package populator writes aggregated counts into the fixed payer-row /
// category-column coordinates of an output workbook sheet, leaving
// formula cells untouched.
package populator

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
	"github.com/nypeach/ps1c-d-analytics/internal/reporterror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Populate writes the counts for every payer in the layout into the
// named sheet and saves the workbook in place. Every payer row gets all
// output columns set, defaulting to zero when the payer produced no
// data this period, so a re-run after corrected source data cannot
// leave stale counts behind. A cell currently holding a formula is
// never written; the check runs per cell on every write because rows
// and sheets may mix literal and formula cells.
//
// A missing sheet is a warning and a no-op. A save failure is returned
// as a SaveError: a half-written workbook must not pass silently, and
// re-running the populate is safe because the written values are a pure
// function of the source data.
func Populate(workbookPath, sheet string, counts *models.Counts, layout models.Layout) error {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", workbookPath, err)
	}
	defer func() { _ = f.Close() }()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		log.Warnf("Sheet %q not found in %s, skipping: %v",
			sheet, workbookPath, &reporterror.SheetNotFoundError{Workbook: workbookPath, Sheet: sheet})
		return nil
	}

	written, preserved := 0, 0
	for _, payer := range layout.Payers() {
		for _, cat := range models.OutputCategories {
			cell, ok := layout.Cell(payer, cat)
			if !ok {
				continue
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil {
				return fmt.Errorf("inspecting cell %s on %q: %w", cell, sheet, err)
			}
			if formula != "" {
				preserved++
				log.Debugf("Preserving formula in %s!%s", sheet, cell)
				continue
			}
			if err := f.SetCellValue(sheet, cell, counts.Get(payer, cat)); err != nil {
				return fmt.Errorf("writing cell %s on %q: %w", cell, sheet, err)
			}
			written++
		}
	}

	resetCursor(f, sheet, idx)

	if err := f.Save(); err != nil {
		return &reporterror.SaveError{Workbook: workbookPath, Sheet: sheet, Err: err}
	}

	log.WithFields(logrus.Fields{
		"sheet":     sheet,
		"written":   written,
		"preserved": preserved,
	}).Info("Populated worksheet")

	return nil
}

// resetCursor moves the active sheet and selection back to the top of
// the populated sheet. Purely cosmetic; failures are ignored.
func resetCursor(f *excelize.File, sheet string, idx int) {
	f.SetActiveSheet(idx)
	if err := f.SetSheetView(sheet, -1, &excelize.ViewOptions{TopLeftCell: stringPtr("A1")}); err != nil {
		log.Debugf("Could not reset view on %q: %v", sheet, err)
	}
}

func stringPtr(s string) *string { return &s }
