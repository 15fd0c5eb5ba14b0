// Package root contains the root command for the application
package root

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/internal/config"
	"github.com/nypeach/ps1c-d-analytics/internal/fileutils"
	"github.com/nypeach/ps1c-d-analytics/internal/logging"
	"github.com/nypeach/ps1c-d-analytics/internal/models"
	"github.com/nypeach/ps1c-d-analytics/internal/pipeline"
	"github.com/nypeach/ps1c-d-analytics/internal/populator"
	"github.com/nypeach/ps1c-d-analytics/internal/report"
	"github.com/nypeach/ps1c-d-analytics/internal/sharepoint"
	"github.com/nypeach/ps1c-d-analytics/internal/store"
	"github.com/nypeach/ps1c-d-analytics/internal/template"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Environment string
	Year        string
	ExportCSV   bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Layout is the worksheet layout contract loaded at startup
	Layout models.Layout

	// SharedFlags are the flags common to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ps1c-stats",
		Short: "Aggregate remittance reconciliation notes into the yearly stats workbook.",
		Long: `ps1c-stats downloads payer master spreadsheets from the reconciliation
document store, classifies them by reporting period, aggregates their note
column into outcome categories, and writes the counts into the yearly stats
workbook without disturbing its formulas.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ps1c-stats!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all packages
			fileutils.SetLogger(Log)
			template.SetLogger(Log)
			populator.SetLogger(Log)
			store.SetLogger(Log)
			sharepoint.SetLogger(Log)
			report.SetLogger(Log)

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Log = config.ConfigureLoggingFromConfig(Cfg)

			Layout, err = store.NewLayoutStore(Cfg.Data.LayoutFile).Load()
			if err != nil {
				Log.Fatalf("Failed to load worksheet layout: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Environment, "environment", "e", "prod", "Environment to process (dev or prod)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Year, "year", "y", time.Now().Format("2006"), "Reporting year")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.ExportCSV, "export-csv", false, "Write an aggregate summary CSV next to the workbook")
}

// NewPipeline builds the stats pipeline from the loaded configuration.
func NewPipeline() *pipeline.Pipeline {
	return pipeline.New(Cfg, Layout, logging.NewLogrusAdapterFromLogger(Log))
}

// NewRemoteClient connects to the reconciliation document store.
func NewRemoteClient(ctx context.Context) (*sharepoint.Client, error) {
	return sharepoint.NewClient(ctx, sharepoint.Config{
		TenantID:     Cfg.SharePoint.TenantID,
		ClientID:     Cfg.SharePoint.ClientID,
		ClientSecret: Cfg.SharePoint.ClientSecret,
		SiteHostname: Cfg.SharePoint.SiteHostname,
		SitePath:     Cfg.SharePoint.SitePath,
	})
}
