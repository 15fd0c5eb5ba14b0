// Package fetch handles the remote download command
package fetch

import (
	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/cmd/root"
)

// Cmd represents the fetch command
var Cmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download payer master files from the document store",
	Long: `Download every *_PMT MASTER_*.xlsx file under the environment's root
folder in the reconciliation document store into the local environment
directory, overwriting existing copies.`,
	Run: fetchFunc,
}

func fetchFunc(cmd *cobra.Command, args []string) {
	environment := root.SharedFlags.Environment
	root.Log.Infof("Downloading payer master files for %s environment...", environment)

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
}
