// Package template provisions the per-year output workbooks by cloning
// the stats template and substituting the year into sheet names and
// header cells.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/nypeach/ps1c-d-analytics/internal/fileutils"
	"github.com/nypeach/ps1c-d-analytics/internal/reporterror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Provisioner creates and reopens the per-year output workbooks. The
// template itself is read-only; it is only ever copied.
type Provisioner struct {
	TemplatePath string
	OutputDir    string
	Placeholder  string   // literal token standing in for the year, e.g. "{YYYY}"
	HeaderCells  []string // cell addresses whose value carries the token, e.g. "A1"
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(templatePath, outputDir, placeholder string, headerCells []string) *Provisioner {
	return &Provisioner{
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Placeholder:  placeholder,
		HeaderCells:  headerCells,
	}
}

// OutputPath returns the workbook path for a year. YTD-only runs use a
// separate workbook so a partial monthly run never shares a file with
// the cumulative report.
func (p *Provisioner) OutputPath(year string, ytdOnly bool) string {
	name := year + "_Stats.xlsx"
	if ytdOnly {
		name = year + "-YTD.xlsx"
	}
	return filepath.Join(p.OutputDir, name)
}

// EnsureWorkbook returns the path of the year's output workbook,
// creating it from the template on first use. An existing workbook is
// returned untouched, which makes provisioning idempotent and safe to
// call on every run. A missing template is fatal for the year.
func (p *Provisioner) EnsureWorkbook(year string, ytdOnly bool) (string, error) {
	out := p.OutputPath(year, ytdOnly)
	if fileutils.FileExists(out) {
		log.Debugf("Workbook already provisioned: %s", out)
		return out, nil
	}

	if !fileutils.FileExists(p.TemplatePath) {
		return "", &reporterror.MissingTemplateError{Year: year, Path: p.TemplatePath}
	}

	if err := fileutils.CopyFile(p.TemplatePath, out); err != nil {
		return "", fmt.Errorf("cloning template for %s: %w", year, err)
	}

	if err := p.substituteYear(out, year); err != nil {
		// Remove the partial clone so the next run re-provisions
		// instead of treating it as a finished workbook.
		_ = os.Remove(out)
		return "", fmt.Errorf("substituting year into %s: %w", out, err)
	}

	log.Infof("Provisioned workbook %s from template", out)
	return out, nil
}

// substituteYear renames every sheet whose name contains the
// placeholder token and rewrites every designated header cell whose
// value contains it. Everything else, formulas included, is left
// untouched.
func (p *Provisioner) substituteYear(path, year string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening cloned workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, name := range f.GetSheetList() {
		if !strings.Contains(name, p.Placeholder) {
			continue
		}
		renamed := strings.ReplaceAll(name, p.Placeholder, year)
		if err := f.SetSheetName(name, renamed); err != nil {
			return fmt.Errorf("renaming sheet %q: %w", name, err)
		}
		log.Debugf("Renamed sheet %q to %q", name, renamed)
	}

	for _, name := range f.GetSheetList() {
		for _, cell := range p.HeaderCells {
			value, err := f.GetCellValue(name, cell)
			if err != nil {
				return fmt.Errorf("reading header cell %s on %q: %w", cell, name, err)
			}
			if !strings.Contains(value, p.Placeholder) {
				continue
			}
			substituted := strings.ReplaceAll(value, p.Placeholder, year)
			if err := f.SetCellValue(name, cell, substituted); err != nil {
				return fmt.Errorf("writing header cell %s on %q: %w", cell, name, err)
			}
		}
	}

	return f.Save()
}
