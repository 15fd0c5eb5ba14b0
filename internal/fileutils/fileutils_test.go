package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAndDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))

	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(path))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	require.NoError(t, EnsureDirectoryExists(dir))
	assert.True(t, DirectoryExists(dir))

	// Second call is a no-op.
	require.NoError(t, EnsureDirectoryExists(dir))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "out", "dst.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, CopyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// Overwrites an existing destination.
	require.NoError(t, os.WriteFile(src, []byte("updated"), 0644))
	require.NoError(t, CopyFile(src, dst))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), data)
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestListFilesMatching(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"2025-08_PMT MASTER_Aetna.xlsx",
		"2025-07_PMT MASTER_Cigna.xlsx",
		"notes.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub_PMT MASTER_dir.xlsx"), 0755))

	files, err := ListFilesMatching(dir, "*_PMT MASTER_*.xlsx")
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Sorted, directories excluded.
	assert.Contains(t, files[0], "2025-07")
	assert.Contains(t, files[1], "2025-08")
}

func TestListFilesMatchingMissingDir(t *testing.T) {
	_, err := ListFilesMatching(filepath.Join(t.TempDir(), "nope"), "*")
	assert.Error(t, err)
}
