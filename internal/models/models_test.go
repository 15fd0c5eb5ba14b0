package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKey(t *testing.T) {
	monthly := PeriodKey{Year: "2025", Month: "08"}
	assert.Equal(t, "2025-08", monthly.String())
	assert.False(t, monthly.IsYTD())

	ytd := YTDKey("2025")
	assert.Equal(t, "2025-YTD", ytd.String())
	assert.True(t, ytd.IsYTD())
}

func TestCountsAddAndGet(t *testing.T) {
	c := NewCounts()
	c.Add("Aetna", CategoryBalanced)
	c.Add("Aetna", CategoryBalanced)
	c.Add("Aetna", CategoryAmkai)
	c.Add("Cigna", CategoryNotBalancedReview)
	c.Add("Cigna", Category("Mystery Note"))

	assert.Equal(t, 2, c.Get("Aetna", CategoryBalanced))
	assert.Equal(t, 1, c.Get("Aetna", CategoryAmkai))
	assert.Equal(t, 0, c.Get("Aetna", CategoryNotBalancedReview))
	assert.Equal(t, 1, c.Get("Cigna", CategoryNotBalancedReview))
	assert.Equal(t, 0, c.Get("Humana", CategoryBalanced))

	// Amkai lives outside the generic category map.
	assert.Empty(t, c.Categories["Aetna"][CategoryAmkai])
	assert.Equal(t, 1, c.Amkai["Aetna"])

	assert.Equal(t, []string{"Aetna", "Cigna"}, c.Payers())
	assert.Equal(t, 5, c.Total())
}

func TestCountsPayersIncludesAmkaiOnly(t *testing.T) {
	c := NewCounts()
	c.Add("Kaiser", CategoryAmkai)
	assert.Equal(t, []string{"Kaiser"}, c.Payers())
}

func TestLayoutCell(t *testing.T) {
	layout := Layout{
		Rows:    map[string]int{"Aetna": 4},
		Columns: map[Category]string{CategoryBalanced: "B"},
	}

	cell, ok := layout.Cell("Aetna", CategoryBalanced)
	require.True(t, ok)
	assert.Equal(t, "B4", cell)

	_, ok = layout.Cell("Cigna", CategoryBalanced)
	assert.False(t, ok)
	_, ok = layout.Cell("Aetna", CategoryAmkai)
	assert.False(t, ok)
}

func TestLayoutPayersSortedByRow(t *testing.T) {
	layout := Layout{
		Rows: map[string]int{"Zeta": 4, "Alpha": 6, "Mid": 5},
	}
	assert.Equal(t, []string{"Zeta", "Mid", "Alpha"}, layout.Payers())
}

func TestLayoutValidate(t *testing.T) {
	valid := Layout{
		Rows: map[string]int{"Aetna": 4},
		Columns: map[Category]string{
			CategoryBalanced:            "B",
			CategoryNotBalancedExpected: "C",
			CategoryNotBalancedReview:   "D",
			CategoryAmkai:               "E",
		},
	}
	require.NoError(t, valid.Validate())

	noRows := valid
	noRows.Rows = map[string]int{}
	assert.Error(t, noRows.Validate())

	badRow := valid
	badRow.Rows = map[string]int{"Aetna": 0}
	assert.Error(t, badRow.Validate())

	missingColumn := valid
	missingColumn.Columns = map[Category]string{CategoryBalanced: "B"}
	assert.Error(t, missingColumn.Validate())
}

func TestRemoteFileIsFolder(t *testing.T) {
	assert.True(t, RemoteFile{Folder: &FolderFacet{}}.IsFolder())
	assert.False(t, RemoteFile{}.IsFolder())
}
