// Package ytd handles the year-to-date command
package ytd

import (
	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/cmd/root"
)

// Cmd represents the ytd command
var Cmd = &cobra.Command{
	Use:   "ytd",
	Short: "Populate the standalone year-to-date workbook",
	Long: `Aggregate the environment's payer master files for the whole year in a
single pass and populate the YTD sheet of the <year>-YTD workbook.`,
	Run: ytdFunc,
}

func ytdFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("YTD command called")
	root.Log.Infof("Environment: %s", root.SharedFlags.Environment)
	root.Log.Infof("Year: %s", root.SharedFlags.Year)

	p := root.NewPipeline()
	if err := p.RunYTD(root.SharedFlags.Environment, root.SharedFlags.Year, root.SharedFlags.ExportCSV); err != nil {
		root.Log.Fatalf("YTD run failed: %v", err)
	}
	root.Log.Info("YTD workbook updated successfully!")
}
