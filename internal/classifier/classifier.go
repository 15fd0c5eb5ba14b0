// Package classifier derives reporting periods and payer names from
// payer master file names and groups files by period.
package classifier

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/nypeach/ps1c-d-analytics/internal/logging"
	"github.com/nypeach/ps1c-d-analytics/internal/models"
	"github.com/nypeach/ps1c-d-analytics/internal/reporterror"
)

// PayerDelimiter separates the period prefix from the payer name in a
// payer master file name, e.g. "2025-08_PMT MASTER_Aetna.xlsx".
const PayerDelimiter = "_PMT MASTER_"

// ClassifiedFile is a local file that has been assigned to a reporting
// period and a payer.
type ClassifiedFile struct {
	Path   string
	Period models.PeriodKey
	Payer  string
}

// Classifier assigns files to reporting periods based on their name
// prefix. Only files whose names begin with a supported year are
// eligible; everything else is silently skipped.
type Classifier struct {
	years  map[string]struct{}
	logger logging.Logger
}

// New creates a Classifier accepting the given year prefixes.
func New(supportedYears []string, logger logging.Logger) *Classifier {
	years := make(map[string]struct{}, len(supportedYears))
	for _, y := range supportedYears {
		years[y] = struct{}{}
	}
	return &Classifier{years: years, logger: logger}
}

// Classify derives the period and payer for a single file. ok is false
// when the file is not a payer master file for a supported year; that
// is an expected outcome, not an error.
func (c *Classifier) Classify(path string) (ClassifiedFile, bool) {
	name := filepath.Base(path)

	// Period prefix: YYYY-MM, gated on the supported year set.
	if len(name) < 7 || name[4] != '-' {
		c.logger.Debug("Skipping file without period prefix",
			logging.Field{Key: logging.FieldFile, Value: name})
		return ClassifiedFile{}, false
	}
	year := name[:4]
	if _, supported := c.years[year]; !supported {
		c.logger.Debug("Skipping file for unsupported year",
			logging.Field{Key: logging.FieldFile, Value: name},
			logging.Field{Key: logging.FieldYear, Value: year})
		return ClassifiedFile{}, false
	}
	month := name[5:7]
	if !isDigits(year) || !isDigits(month) {
		c.logger.Debug("Skipping file with malformed period prefix",
			logging.Field{Key: logging.FieldFile, Value: name})
		return ClassifiedFile{}, false
	}

	// Payer: the segment after the delimiter, which must occur exactly
	// once. A missing or repeated delimiter excludes the file with a
	// diagnostic rather than failing the run.
	parts := strings.Split(name, PayerDelimiter)
	if len(parts) != 2 {
		err := &reporterror.FilenameError{File: name, Reason: "expected exactly one occurrence of " + PayerDelimiter}
		c.logger.WithError(err).Warn("Skipping file without payer delimiter",
			logging.Field{Key: logging.FieldFile, Value: name})
		return ClassifiedFile{}, false
	}
	payer := strings.TrimSuffix(parts[1], filepath.Ext(parts[1]))
	if payer == "" {
		err := &reporterror.FilenameError{File: name, Reason: "empty payer name after delimiter"}
		c.logger.WithError(err).Warn("Skipping file with empty payer name",
			logging.Field{Key: logging.FieldFile, Value: name})
		return ClassifiedFile{}, false
	}

	return ClassifiedFile{
		Path:   path,
		Period: models.PeriodKey{Year: year, Month: month},
		Payer:  payer,
	}, true
}

// Group classifies every path and groups the eligible files by period.
// Files within a group are ordered by path for stable log output.
func (c *Classifier) Group(paths []string) map[models.PeriodKey][]ClassifiedFile {
	groups := make(map[models.PeriodKey][]ClassifiedFile)
	for _, path := range paths {
		cf, ok := c.Classify(path)
		if !ok {
			continue
		}
		groups[cf.Period] = append(groups[cf.Period], cf)
	}

	for key, files := range groups {
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		groups[key] = files
	}

	c.logger.Info("Grouped files by reporting period",
		logging.Field{Key: "total_files", Value: len(paths)},
		logging.Field{Key: "periods", Value: len(groups)})

	return groups
}

// SortedPeriods returns the group keys in chronological order.
func SortedPeriods(groups map[models.PeriodKey][]ClassifiedFile) []models.PeriodKey {
	keys := make([]models.PeriodKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
