// Package dataset defines the in-memory table model shared by the validator,
// transformer and summarizer. A table is column-ordered and string-valued;
// typed interpretation (integer years, float exchange values) happens at the
// point of use so that loading never destroys the original rendering of a
// value.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is one loaded dataset: a header and its data rows. Rows hold values
// in header order. Tables are treated as immutable once built; FilterRows and
// DropColumns return derived tables and leave the receiver untouched.
type Table struct {
	columns []string
	rows    [][]string
	index   map[string]int
}

// New builds a Table from a header and data rows. Column names must be
// unique and every row must match the header width.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		index[name] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, header has %d columns", i, len(row), len(columns))
		}
	}

	return &Table{
		columns: append([]string(nil), columns...),
		rows:    rows,
		index:   index,
	}, nil
}

// Columns returns the column names in input order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns the values of one data row in column order.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the value at the given row for the named column.
func (t *Table) Value(row int, column string) (string, bool) {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return "", false
	}
	return t.rows[row][i], true
}

// IntValue parses the named column of a row as an integer.
func (t *Table) IntValue(row int, column string) (int, error) {
	raw, ok := t.Value(row, column)
	if !ok {
		return 0, fmt.Errorf("no value at row %d column %q", row, column)
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

// FloatValue parses the named column of a row as a real number.
func (t *Table) FloatValue(row int, column string) (float64, error) {
	raw, ok := t.Value(row, column)
	if !ok {
		return 0, fmt.Errorf("no value at row %d column %q", row, column)
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// FilterRows returns a new table containing only the rows for which keep
// returns true. Row slices are shared with the receiver; neither table
// mutates them.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	kept := make([][]string, 0, len(t.rows))
	for i := range t.rows {
		if keep(i) {
			kept = append(kept, t.rows[i])
		}
	}

	derived, _ := New(t.columns, kept)
	return derived
}

// DropColumns returns a new table without the named columns. Names that do
// not occur in the table are ignored. Remaining columns keep their input
// order.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	var keptColumns []string
	var keptIdx []int
	for i, name := range t.columns {
		if !drop[name] {
			keptColumns = append(keptColumns, name)
			keptIdx = append(keptIdx, i)
		}
	}

	if len(keptColumns) == len(t.columns) {
		return t
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		newRow := make([]string, len(keptIdx))
		for j, i := range keptIdx {
			newRow[j] = row[i]
		}
		rows[r] = newRow
	}

	derived, _ := New(keptColumns, rows)
	return derived
}

// DistinctValues returns the distinct values of the named column in first-seen
// order. Callers sort as needed for deterministic output.
func (t *Table) DistinctValues(column string) []string {
	i, ok := t.index[column]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var values []string
	for _, row := range t.rows {
		if !seen[row[i]] {
			seen[row[i]] = true
			values = append(values, row[i])
		}
	}
	return values
}
