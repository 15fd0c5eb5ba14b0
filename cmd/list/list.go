// Package list handles the remote listing command
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nypeach/ps1c-d-analytics/cmd/root"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List the items at the root of the Documents library",
	Run:   listFunc,
}

func listFunc(cmd *cobra.Command, args []string) {
	client, err := root.NewRemoteClient(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Could not connect to document store: %v", err)
	}

	items, err := client.ListRootDocuments(cmd.Context())
	if err != nil {
		root.Log.Fatalf("Listing failed: %v", err)
	}

	fmt.Printf("Found %d items in Documents library:\n", len(items))
	for _, item := range items {
		kind := "FILE"
		if item.IsFolder() {
			kind = "FOLDER"
		}
		fmt.Printf("[%s] %s\n", kind, item.Name)
		fmt.Printf("    ID: %s\n", item.ID)
		fmt.Printf("    Size: %.2f MB\n", float64(item.Size)/(1024*1024))
		fmt.Printf("    Modified: %s\n", item.LastModified.Format("2006-01-02 15:04:05"))
		if item.WebURL != "" {
			fmt.Printf("    URL: %s\n", item.WebURL)
		}
	}
}
