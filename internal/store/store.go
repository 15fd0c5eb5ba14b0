// Package store loads the worksheet layout contract (payer rows and
// category columns) from its YAML configuration file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// layoutFile is the on-disk shape of the layout configuration.
type layoutFile struct {
	Payers  map[string]int    `yaml:"payers"`
	Columns map[string]string `yaml:"columns"`
}

// LayoutStore loads the payer-row / category-column layout from a YAML
// file, falling back to the built-in defaults matching the shipped
// stats template when the file is absent.
type LayoutStore struct {
	Path string
}

// NewLayoutStore creates a store for the given layout file path.
func NewLayoutStore(path string) *LayoutStore {
	return &LayoutStore{Path: path}
}

// DefaultLayout is the layout contract of the shipped stats template.
func DefaultLayout() models.Layout {
	return models.Layout{
		Rows: map[string]int{
			"Aetna":             4,
			"Cigna":             5,
			"HMA":               6,
			"Humana":            7,
			"Kaiser":            8,
			"Medicare":          9,
			"Premera":           10,
			"Regence":           11,
			"United Healthcare": 12,
			"Workers Comp":      13,
		},
		Columns: map[models.Category]string{
			models.CategoryBalanced:            "B",
			models.CategoryNotBalancedExpected: "C",
			models.CategoryNotBalancedReview:   "D",
			models.CategoryAmkai:               "E",
		},
	}
}

// Load reads the layout file, resolving it from the usual config
// locations. A missing file yields the default layout with a warning; a
// present but invalid file is an error, since silently reporting into
// wrong cells is worse than not reporting.
func (s *LayoutStore) Load() (models.Layout, error) {
	path, err := s.resolveConfigFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Layout file not found: %s, using built-in layout", s.Path)
			return DefaultLayout(), nil
		}
		return models.Layout{}, fmt.Errorf("error resolving layout file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Layout{}, fmt.Errorf("error reading layout file: %w", err)
	}

	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return models.Layout{}, fmt.Errorf("error parsing layout file %s: %w", path, err)
	}

	layout := models.Layout{
		Rows:    lf.Payers,
		Columns: make(map[models.Category]string, len(lf.Columns)),
	}
	for cat, col := range lf.Columns {
		layout.Columns[models.Category(cat)] = col
	}
	// Columns may be omitted from the file to keep the template default.
	if len(layout.Columns) == 0 {
		layout.Columns = DefaultLayout().Columns
	}

	if err := layout.Validate(); err != nil {
		return models.Layout{}, fmt.Errorf("invalid layout in %s: %w", path, err)
	}

	log.Debugf("Loaded layout with %d payer rows from %s", len(layout.Rows), path)
	return layout, nil
}

// resolveConfigFile gets the full path to a config file, checking the
// standard locations.
func (s *LayoutStore) resolveConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "ps1c-stats", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}
