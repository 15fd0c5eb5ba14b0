package sharepoint

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nypeach/ps1c-d-analytics/internal/fileutils"
)

// all835sFolder is the subfolder of the environment root that holds one
// folder per payer.
const all835sFolder = "All 835s"

// DownloadPayerMasters downloads every payer master file under the
// environment's root folder into destDir, overwriting local copies.
// The remote layout is root/All 835s/<payer>/..., and within each payer
// folder only files named *_PMT MASTER_<payer>.xlsx are taken. A single
// file that fails to download is logged and skipped; the remaining
// payers and files still proceed.
func (c *Client) DownloadPayerMasters(ctx context.Context, rootFolderID, destDir string) ([]string, error) {
	if err := fileutils.EnsureDirectoryExists(destDir); err != nil {
		return nil, err
	}

	root, err := c.Subfolder(ctx, rootFolderID, all835sFolder)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("folder %q not found under root folder %s", all835sFolder, rootFolderID)
	}

	children, err := c.ListChildren(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	var downloaded []string
	for _, payerFolder := range children {
		if !payerFolder.IsFolder() {
			continue
		}
		payer := payerFolder.Name
		log.Infof("Processing payer: %s", payer)

		files, err := c.ListChildren(ctx, payerFolder.ID)
		if err != nil {
			log.Warnf("Could not list files for payer %s: %v", payer, err)
			continue
		}

		suffix := fmt.Sprintf("_PMT MASTER_%s.xlsx", payer)
		matched := 0
		for _, file := range files {
			if file.IsFolder() || !strings.HasSuffix(file.Name, suffix) {
				continue
			}
			matched++

			data, err := c.Download(ctx, file.ID)
			if err != nil {
				log.Warnf("Error downloading file %q: %v", file.Name, err)
				continue
			}
			path := filepath.Join(destDir, file.Name)
			if err := fileutils.WriteFile(path, data, 0644); err != nil {
				log.Warnf("Error saving file %q: %v", file.Name, err)
				continue
			}
			downloaded = append(downloaded, path)
			log.Debugf("Downloaded: %s", file.Name)
		}

		log.Infof("Found %d payer master files for %s", matched, payer)
	}

	log.Infof("Total files downloaded: %d", len(downloaded))
	return downloaded, nil
}
