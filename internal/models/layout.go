package models

import (
	"fmt"
	"sort"
)

// Layout is the schema mapping between the aggregation domain and the
// stats template: which worksheet row each payer occupies and which
// column letter each output category occupies. It is fixed at
// construction and never mutated during a run.
type Layout struct {
	Rows    map[string]int      // payer name -> worksheet row
	Columns map[Category]string // output category -> column letter
}

// Cell returns the cell reference for a payer/category pair,
// e.g. "B4". ok is false when the payer or category is not part of the
// layout.
func (l Layout) Cell(payer string, cat Category) (string, bool) {
	row, okRow := l.Rows[payer]
	col, okCol := l.Columns[cat]
	if !okRow || !okCol {
		return "", false
	}
	return fmt.Sprintf("%s%d", col, row), true
}

// Payers returns the layout's payer names sorted by worksheet row.
func (l Layout) Payers() []string {
	payers := make([]string, 0, len(l.Rows))
	for payer := range l.Rows {
		payers = append(payers, payer)
	}
	sort.Slice(payers, func(i, j int) bool {
		if l.Rows[payers[i]] != l.Rows[payers[j]] {
			return l.Rows[payers[i]] < l.Rows[payers[j]]
		}
		return payers[i] < payers[j]
	})
	return payers
}

// Validate checks that the layout covers every output category and at
// least one payer row.
func (l Layout) Validate() error {
	if len(l.Rows) == 0 {
		return fmt.Errorf("layout has no payer rows")
	}
	for payer, row := range l.Rows {
		if row < 1 {
			return fmt.Errorf("payer %q has invalid row %d", payer, row)
		}
	}
	for _, cat := range OutputCategories {
		if _, ok := l.Columns[cat]; !ok {
			return fmt.Errorf("layout has no column for category %q", cat)
		}
	}
	return nil
}
