// Package report exports run aggregates as a CSV summary, one row per
// payer per period, mirroring the values written into the workbook.
package report

import (
	"fmt"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/nypeach/ps1c-d-analytics/internal/fileutils"
	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SummaryRow is one payer's counts for one period.
type SummaryRow struct {
	Period              string `csv:"Period"`
	Payer               string `csv:"Payer"`
	Balanced            int    `csv:"Balanced"`
	NotBalancedExpected int    `csv:"Not Balanced-Expected"`
	NotBalancedReview   int    `csv:"Not Balanced-Review"`
	Amkai               int    `csv:"Amkai"`
}

// WriteSummary writes the aggregates for all periods of a run to a CSV
// file. Every layout payer appears in every period, zero-filled,
// matching what the populator writes to the workbook.
func WriteSummary(path string, aggregates map[models.PeriodKey]*models.Counts, layout models.Layout) error {
	periods := make([]models.PeriodKey, 0, len(aggregates))
	for key := range aggregates {
		periods = append(periods, key)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].String() < periods[j].String() })

	rows := make([]SummaryRow, 0, len(periods)*len(layout.Rows))
	for _, period := range periods {
		counts := aggregates[period]
		for _, payer := range layout.Payers() {
			rows = append(rows, SummaryRow{
				Period:              period.String(),
				Payer:               payer,
				Balanced:            counts.Get(payer, models.CategoryBalanced),
				NotBalancedExpected: counts.Get(payer, models.CategoryNotBalancedExpected),
				NotBalancedReview:   counts.Get(payer, models.CategoryNotBalancedReview),
				Amkai:               counts.Get(payer, models.CategoryAmkai),
			})
		}
	}

	f, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing summary CSV %s: %w", path, err)
	}

	log.Infof("Wrote summary CSV %s (%d rows)", path, len(rows))
	return nil
}
