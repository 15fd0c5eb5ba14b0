package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nypeach/ps1c-d-analytics/internal/models"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())
	assert.Equal(t, 4, layout.Rows["Aetna"])
	assert.Equal(t, "B", layout.Columns[models.CategoryBalanced])
	assert.Equal(t, "E", layout.Columns[models.CategoryAmkai])
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payers.yaml")
	content := `payers:
  Aetna: 3
  Cigna: 4
columns:
  Balanced: C
  Not Balanced-Expected: D
  Not Balanced-Review: E
  Amkai: F
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	layout, err := NewLayoutStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, layout.Rows["Aetna"])
	assert.Equal(t, 4, layout.Rows["Cigna"])
	assert.Equal(t, "C", layout.Columns[models.CategoryBalanced])
	assert.Equal(t, "F", layout.Columns[models.CategoryAmkai])
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	layout, err := NewLayoutStore(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout().Rows, layout.Rows)
}

func TestLoadOmittedColumnsUseDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payers.yaml")
	content := `payers:
  Aetna: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	layout, err := NewLayoutStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout().Columns, layout.Columns)
}

func TestLoadInvalidLayout(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Not YAML", "payers: [not a map"},
		{"No payers", "columns:\n  Balanced: B\n"},
		{"Bad row", "payers:\n  Aetna: 0\n"},
		{"Missing category column", "payers:\n  Aetna: 3\ncolumns:\n  Balanced: B\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "payers.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))
			_, err := NewLayoutStore(path).Load()
			assert.Error(t, err)
		})
	}
}
