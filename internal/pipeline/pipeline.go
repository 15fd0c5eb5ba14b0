// Package pipeline orchestrates one run of the stats pipeline for an
// environment and year: classify downloaded payer master files by
// period, aggregate note categories, provision the year's workbook, and
// populate every period sheet plus the year-to-date sheet.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/nypeach/ps1c-d-analytics/internal/aggregator"
	"github.com/nypeach/ps1c-d-analytics/internal/classifier"
	"github.com/nypeach/ps1c-d-analytics/internal/config"
	"github.com/nypeach/ps1c-d-analytics/internal/fileutils"
	"github.com/nypeach/ps1c-d-analytics/internal/logging"
	"github.com/nypeach/ps1c-d-analytics/internal/models"
	"github.com/nypeach/ps1c-d-analytics/internal/populator"
	"github.com/nypeach/ps1c-d-analytics/internal/report"
	"github.com/nypeach/ps1c-d-analytics/internal/template"
)

// payerMasterGlob matches the downloaded payer master files inside an
// environment directory.
const payerMasterGlob = "*_PMT MASTER_*.xlsx"

// Pipeline wires the classifier, aggregator, provisioner and populator
// together. Runs are strictly sequential: each period mutates the same
// output workbook, so there is never more than one writer.
type Pipeline struct {
	cfg        *config.Config
	classifier *classifier.Classifier
	aggregator *aggregator.Aggregator
	layout     models.Layout
	logger     logging.Logger
}

// New creates a Pipeline for the given configuration and layout.
func New(cfg *config.Config, layout models.Layout, logger logging.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		classifier: classifier.New(cfg.Data.Years, logger),
		aggregator: aggregator.New(logger),
		layout:     layout,
		logger:     logger,
	}
}

// RunStats processes an environment's files for one year: every monthly
// sheet of <year>_Stats.xlsx plus its YTD sheet. A failed sheet is
// reported and the remaining sheets still run; the returned error
// summarizes how many sheets were not updated.
func (p *Pipeline) RunStats(environment, year string, exportCSV bool) error {
	groups, err := p.classifyEnvironment(environment, year)
	if err != nil {
		return err
	}

	prov := p.provisioner(environment)
	workbook, err := prov.EnsureWorkbook(year, false)
	if err != nil {
		return err
	}

	aggregates := make(map[models.PeriodKey]*models.Counts)
	failed := 0
	total := 0

	for _, period := range classifier.SortedPeriods(groups) {
		counts := p.aggregator.Aggregate(groups[period])
		aggregates[period] = counts
		total++
		if err := populator.Populate(workbook, period.String(), counts, p.layout); err != nil {
			p.logger.WithError(err).Error("Period sheet not updated",
				logging.Field{Key: logging.FieldPeriod, Value: period.String()},
				logging.Field{Key: logging.FieldWorkbook, Value: workbook})
			failed++
		}
	}

	// YTD is a fresh pass over the union of all files, not a sum of the
	// monthly aggregates.
	ytdKey := models.YTDKey(year)
	ytdCounts := p.aggregator.Aggregate(p.unionFiles(groups))
	aggregates[ytdKey] = ytdCounts
	total++
	if err := populator.Populate(workbook, ytdKey.String(), ytdCounts, p.layout); err != nil {
		p.logger.WithError(err).Error("YTD sheet not updated",
			logging.Field{Key: logging.FieldWorkbook, Value: workbook})
		failed++
	}

	if exportCSV {
		csvPath := filepath.Join(config.OutputDir(environment), year+"_Summary.csv")
		if err := report.WriteSummary(csvPath, aggregates, p.layout); err != nil {
			p.logger.WithError(err).Error("Summary CSV not written")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sheets not updated in %s", failed, total, workbook)
	}
	return nil
}

// RunYTD processes an environment's files into the standalone
// year-to-date workbook <year>-YTD.xlsx.
func (p *Pipeline) RunYTD(environment, year string, exportCSV bool) error {
	groups, err := p.classifyEnvironment(environment, year)
	if err != nil {
		return err
	}

	prov := p.provisioner(environment)
	workbook, err := prov.EnsureWorkbook(year, true)
	if err != nil {
		return err
	}

	ytdKey := models.YTDKey(year)
	counts := p.aggregator.Aggregate(p.unionFiles(groups))
	if err := populator.Populate(workbook, ytdKey.String(), counts, p.layout); err != nil {
		return err
	}

	if exportCSV {
		csvPath := filepath.Join(config.OutputDir(environment), year+"-YTD_Summary.csv")
		aggregates := map[models.PeriodKey]*models.Counts{ytdKey: counts}
		if err := report.WriteSummary(csvPath, aggregates, p.layout); err != nil {
			p.logger.WithError(err).Error("Summary CSV not written")
		}
	}

	return nil
}

// classifyEnvironment lists the environment directory and groups its
// payer master files, keeping only the requested year. A missing
// environment directory is a precondition failure for this run.
func (p *Pipeline) classifyEnvironment(environment, year string) (map[models.PeriodKey][]classifier.ClassifiedFile, error) {
	files, err := fileutils.ListFilesMatching(environment, payerMasterGlob)
	if err != nil {
		return nil, fmt.Errorf("environment %q: %w", environment, err)
	}

	groups := p.classifier.Group(files)
	for key := range groups {
		if key.Year != year {
			delete(groups, key)
		}
	}

	p.logger.Info("Classified environment files",
		logging.Field{Key: "environment", Value: environment},
		logging.Field{Key: logging.FieldYear, Value: year},
		logging.Field{Key: "periods", Value: len(groups)})

	return groups, nil
}

func (p *Pipeline) provisioner(environment string) *template.Provisioner {
	return template.NewProvisioner(
		p.cfg.Data.TemplatePath,
		config.OutputDir(environment),
		p.cfg.Template.Placeholder,
		p.cfg.Template.HeaderCells,
	)
}

func (p *Pipeline) unionFiles(groups map[models.PeriodKey][]classifier.ClassifiedFile) []classifier.ClassifiedFile {
	var all []classifier.ClassifiedFile
	for _, period := range classifier.SortedPeriods(groups) {
		all = append(all, groups[period]...)
	}
	return all
}
