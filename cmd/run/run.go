// Package run handles the end-to-end command
package run

import (
	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/cmd/root"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch payer master files, then populate the stats workbook",
	Long: `Download the environment's payer master files from the document store
and immediately run the monthly stats aggregation for the year.`,
	Run: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) {
	environment := root.SharedFlags.Environment
	year := root.SharedFlags.Year

	rootFolderID, err := root.Cfg.RootFolderID(environment)
	if err != nil {
		root.Log.Fatalf("Invalid environment: %v", err)
	}

	client, err := root.NewRemoteClient(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Could not connect to document store: %v", err)
	}

	downloaded, err := client.DownloadPayerMasters(cmd.Context(), rootFolderID, environment)
	if err != nil {
		root.Log.Fatalf("Download failed: %v", err)
	}
	root.Log.Infof("Downloaded %d files to %q", len(downloaded), environment)

	p := root.NewPipeline()
	if err := p.RunStats(environment, year, root.SharedFlags.ExportCSV); err != nil {
		root.Log.Fatalf("Stats run failed: %v", err)
	}
	root.Log.Info("Stats workbook updated successfully!")
}
