// pkg/table/table.go
package table

import (
	"errors"
	"fmt"
	"strings"
)

// Dtype describes the inferred type of a column
type Dtype string

const (
	// DtypeObject marks a column holding text (or mixed) values
	DtypeObject Dtype = "object"
	// DtypeFloat64 marks a column holding nullable float64 values
	DtypeFloat64 Dtype = "float64"
)

// Table is an in-memory tabular structure with named, dtyped columns and
// typed nullable cells. It is mutated in place by the cleaning stages and
// discarded once serialized; there is no persistence behind it.
type Table struct {
	columns []string
	dtypes  []Dtype
	rows    [][]Value
}

// New creates an empty table with the given column names.
// All columns start as object dtype.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("table requires at least one column")
	}

	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col == "" {
			return nil, errors.New("column names cannot be empty")
		}
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", col)
		}
		seen[col] = struct{}{}
	}

	dtypes := make([]Dtype, len(columns))
	for i := range dtypes {
		dtypes[i] = DtypeObject
	}

	return &Table{
		columns: append([]string(nil), columns...),
		dtypes:  dtypes,
		rows:    make([][]Value, 0),
	}, nil
}

// AppendRow adds a row to the table. The row length must match the header.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, append([]Value(nil), row...))
	return nil
}

// NumRows returns the number of rows
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Shape returns (rows, columns)
func (t *Table) Shape() (int, int) {
	return len(t.rows), len(t.columns)
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnIndex returns the position of a column, or false if absent
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// Value returns the cell at (row, col). Panics on out-of-range indexes,
// consistent with slice indexing.
func (t *Table) Value(row, col int) Value {
	return t.rows[row][col]
}

// SetValue replaces the cell at (row, col)
func (t *Table) SetValue(row, col int, v Value) {
	t.rows[row][col] = v
}

// Row returns a copy of the row at the given index
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Dtype returns the dtype of a column, or false if the column is absent
func (t *Table) Dtype(name string) (Dtype, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return "", false
	}
	return t.dtypes[idx], true
}

// SetDtype records the dtype of a column
func (t *Table) SetDtype(name string, dtype Dtype) error {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return fmt.Errorf("column not found: %s", name)
	}
	t.dtypes[idx] = dtype
	return nil
}

// Dtypes returns the dtype of every column keyed by column name
func (t *Table) Dtypes() map[string]Dtype {
	dtypes := make(map[string]Dtype, len(t.columns))
	for i, col := range t.columns {
		dtypes[col] = t.dtypes[i]
	}
	return dtypes
}

// NullCount returns the number of null cells in a column, or false if absent.
// Empty strings are not nulls; only the null sentinel counts.
func (t *Table) NullCount(name string) (int, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return 0, false
	}

	count := 0
	for _, row := range t.rows {
		if row[idx].IsNull() {
			count++
		}
	}
	return count, true
}

// NullCounts returns the null count for every column keyed by column name
func (t *Table) NullCounts() map[string]int {
	counts := make(map[string]int, len(t.columns))
	for _, col := range t.columns {
		n, _ := t.NullCount(col)
		counts[col] = n
	}
	return counts
}

// RenameColumns renames columns according to the mapping. Columns absent
// from the mapping keep their name. Returns an error if a rename would
// produce a duplicate column name.
func (t *Table) RenameColumns(mapping map[string]string) error {
	renamed := make([]string, len(t.columns))
	seen := make(map[string]struct{}, len(t.columns))

	for i, col := range t.columns {
		name := col
		if newName, ok := mapping[col]; ok && newName != "" {
			name = newName
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("rename produces duplicate column: %s", name)
		}
		seen[name] = struct{}{}
		renamed[i] = name
	}

	t.columns = renamed
	return nil
}

// DuplicateCount returns the number of rows that are exact duplicates of an
// earlier row across all columns.
func (t *Table) DuplicateCount() int {
	seen := make(map[string]struct{}, len(t.rows))
	duplicates := 0

	for _, row := range t.rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	return duplicates
}

// DropDuplicates removes all but the first occurrence of each distinct row,
// preserving the relative order of survivors. Returns the number of rows
// removed.
func (t *Table) DropDuplicates() int {
	seen := make(map[string]struct{}, len(t.rows))
	kept := t.rows[:0]
	removed := 0

	for _, row := range t.rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}

	t.rows = kept
	return removed
}

// rowKey builds a canonical key for full-row equality comparison.
// Cells are separated by NUL, which cannot appear in CSV field data.
func rowKey(row []Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0)
		}
		v.encode(&b)
	}
	return b.String()
}
