// Package stats handles the monthly stats command
package stats

import (
	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/cmd/root"
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Populate the yearly stats workbook",
	Long: `Classify the environment's payer master files by month, aggregate their
note categories, and populate every monthly sheet plus the YTD sheet of the
year's stats workbook.`,
	Run: statsFunc,
}

func statsFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Stats command called")
	root.Log.Infof("Environment: %s", root.SharedFlags.Environment)
	root.Log.Infof("Year: %s", root.SharedFlags.Year)

	p := root.NewPipeline()
	if err := p.RunStats(root.SharedFlags.Environment, root.SharedFlags.Year, root.SharedFlags.ExportCSV); err != nil {
		root.Log.Fatalf("Stats run failed: %v", err)
	}
	root.Log.Info("Stats workbook updated successfully!")
}
