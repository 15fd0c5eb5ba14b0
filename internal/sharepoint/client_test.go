package sharepoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

// stubDrive wires an httptest server shaped like the Graph drive API.
type stubDrive struct {
	children map[string][]models.RemoteFile // folder id -> items
	content  map[string][]byte              // file id -> bytes
}

func folder(id, name string) models.RemoteFile {
	return models.RemoteFile{ID: id, Name: name, Folder: &models.FolderFacet{}}
}

func file(id, name string) models.RemoteFile {
	return models.RemoteFile{ID: id, Name: name, Size: 128}
}

func newStubServer(t *testing.T, drive stubDrive) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/drives/d1/root/children", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": drive.children["root"]})
	})
	mux.HandleFunc("/drives/d1/items/", func(w http.ResponseWriter, r *http.Request) {
		rest := r.URL.Path[len("/drives/d1/items/"):]
		if id, ok := cutSuffix(rest, "/children"); ok {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": drive.children[id]})
			return
		}
		if id, ok := cutSuffix(rest, "/content"); ok {
			data, found := drive.content[id]
			if !found {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write(data)
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newClient(srv.Client(), srv.URL)
	c.driveID = "d1"
	return srv, c
}

func cutSuffix(s, suffix string) (string, bool) {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)], true
	}
	return s, false
}

func TestListChildren(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"f1": {folder("f2", "All 835s"), file("f3", "notes.txt")},
		},
	})

	items, err := c.ListChildren(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsFolder())
	assert.False(t, items[1].IsFolder())
}

func TestListRootDocuments(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"root": {folder("f1", "dev"), folder("f2", "prod")},
		},
	})

	items, err := c.ListRootDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSubfolder(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"f1": {folder("f2", "All 835s"), file("f3", "All 835s")},
		},
	})

	found, err := c.Subfolder(context.Background(), "f1", "All 835s")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "f2", found.ID)

	missing, err := c.Subfolder(context.Background(), "f1", "No Such Folder")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDownload(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		content: map[string][]byte{"f9": []byte("workbook bytes")},
	})

	data, err := c.Download(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, []byte("workbook bytes"), data)

	_, err = c.Download(context.Background(), "missing")
	assert.Error(t, err)
}

func TestDownloadPayerMasters(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"env-root": {folder("all835s", "All 835s"), file("stray", "stray.txt")},
			"all835s":  {folder("aetna", "Aetna"), folder("cigna", "Cigna")},
			"aetna": {
				file("a1", "2025-08_PMT MASTER_Aetna.xlsx"),
				file("a2", "2025-07_PMT MASTER_Aetna.xlsx"),
				file("a3", "unrelated.xlsx"),
			},
			"cigna": {
				file("c1", "2025-08_PMT MASTER_Cigna.xlsx"),
				file("c2", "2025-08_PMT MASTER_Aetna.xlsx"), // wrong payer folder, not taken
			},
		},
		content: map[string][]byte{
			"a1": []byte("a1"),
			"a2": []byte("a2"),
			"c1": []byte("c1"),
		},
	})

	dest := filepath.Join(t.TempDir(), "prod")
	downloaded, err := c.DownloadPayerMasters(context.Background(), "env-root", dest)
	require.NoError(t, err)
	assert.Len(t, downloaded, 3)

	data, err := os.ReadFile(filepath.Join(dest, "2025-08_PMT MASTER_Cigna.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c1"), data)

	_, err = os.Stat(filepath.Join(dest, "unrelated.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadPayerMastersMissingRootFolder(t *testing.T) {
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"env-root": {folder("other", "Archive")},
		},
	})

	_, err := c.DownloadPayerMasters(context.Background(), "env-root", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "All 835s")
}

func TestDownloadPayerMastersSkipsFailedFiles(t *testing.T) {
	// One file's content is unavailable; the rest still download.
	_, c := newStubServer(t, stubDrive{
		children: map[string][]models.RemoteFile{
			"env-root": {folder("all835s", "All 835s")},
			"all835s":  {folder("aetna", "Aetna")},
			"aetna": {
				file("a1", "2025-08_PMT MASTER_Aetna.xlsx"),
				file("a2", "2025-07_PMT MASTER_Aetna.xlsx"),
			},
		},
		content: map[string][]byte{"a2": []byte("a2")},
	})

	downloaded, err := c.DownloadPayerMasters(context.Background(), "env-root", t.TempDir())
	require.NoError(t, err)
	require.Len(t, downloaded, 1)
	assert.Contains(t, downloaded[0], "2025-07_PMT MASTER_Aetna.xlsx")
}
