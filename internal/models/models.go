// Package models defines the shared domain types for the remittance
// reconciliation stats pipeline.
package models

import (
	"sort"
	"time"
)

// Category is a normalized reconciliation outcome derived from the raw
// note column of a payer master file. The four exported constants have
// dedicated output columns in the stats template; any other non-empty
// value is an unmapped category that is counted but never written.
type Category string

const (
	CategoryBalanced            Category = "Balanced"
	CategoryNotBalancedExpected Category = "Not Balanced-Expected"
	CategoryNotBalancedReview   Category = "Not Balanced-Review"
	CategoryAmkai               Category = "Amkai"
)

// OutputCategories lists the categories that occupy a column in the
// stats template, in column order.
var OutputCategories = []Category{
	CategoryBalanced,
	CategoryNotBalancedExpected,
	CategoryNotBalancedReview,
	CategoryAmkai,
}

// PeriodKey identifies the reporting window a payer master file belongs
// to: a calendar month of a year, or the year-to-date window.
type PeriodKey struct {
	Year  string // four digits, e.g. "2025"
	Month string // "01".."12", or "YTD"
}

// YTDKey returns the year-to-date period key for a year.
func YTDKey(year string) PeriodKey {
	return PeriodKey{Year: year, Month: "YTD"}
}

// String returns the period in the form used for worksheet names,
// e.g. "2025-08" or "2025-YTD".
func (k PeriodKey) String() string {
	return k.Year + "-" + k.Month
}

// IsYTD reports whether the key denotes the year-to-date window.
func (k PeriodKey) IsYTD() bool {
	return k.Month == "YTD"
}

// Counts accumulates per-payer category counts for one reporting
// period. Amkai rows are tracked in a separate per-payer counter since
// they occupy a distinct output column.
type Counts struct {
	Categories map[string]map[Category]int
	Amkai      map[string]int
}

// NewCounts returns an empty Counts accumulator.
func NewCounts() *Counts {
	return &Counts{
		Categories: make(map[string]map[Category]int),
		Amkai:      make(map[string]int),
	}
}

// Add records one row for the payer under the given category.
func (c *Counts) Add(payer string, cat Category) {
	if cat == CategoryAmkai {
		c.Amkai[payer]++
		return
	}
	byCat, ok := c.Categories[payer]
	if !ok {
		byCat = make(map[Category]int)
		c.Categories[payer] = byCat
	}
	byCat[cat]++
}

// Get returns the count for a payer and category, zero when the payer
// produced no rows of that category this period.
func (c *Counts) Get(payer string, cat Category) int {
	if cat == CategoryAmkai {
		return c.Amkai[payer]
	}
	return c.Categories[payer][cat]
}

// Payers returns the sorted set of payers that contributed at least one
// counted row.
func (c *Counts) Payers() []string {
	seen := make(map[string]struct{}, len(c.Categories))
	for payer := range c.Categories {
		seen[payer] = struct{}{}
	}
	for payer := range c.Amkai {
		seen[payer] = struct{}{}
	}
	payers := make([]string, 0, len(seen))
	for payer := range seen {
		payers = append(payers, payer)
	}
	sort.Strings(payers)
	return payers
}

// Total returns the number of counted rows across all payers and
// categories, unmapped categories included.
func (c *Counts) Total() int {
	total := 0
	for _, byCat := range c.Categories {
		for _, n := range byCat {
			total += n
		}
	}
	for _, n := range c.Amkai {
		total += n
	}
	return total
}

// FolderFacet marks a remote drive item as a folder.
type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

// RemoteFile is a drive item as returned by the remote document store.
// Read-only to the pipeline.
type RemoteFile struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Size         int64        `json:"size"`
	LastModified time.Time    `json:"lastModifiedDateTime"`
	WebURL       string       `json:"webUrl,omitempty"`
	Folder       *FolderFacet `json:"folder,omitempty"`
}

// IsFolder reports whether the item is a folder rather than a file.
func (f RemoteFile) IsFolder() bool {
	return f.Folder != nil
}
