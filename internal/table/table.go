package table

import "sort"

// Table is an in-memory row/column dataset. Every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates a table, padding or truncating rows to the column count
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, normalizeRow(row, len(columns)))
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// HasColumns reports whether every named column exists
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if !t.HasColumn(name) {
			return false
		}
	}
	return true
}

// Values returns the cells of the named column in row order
func (t *Table) Values(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Head returns a table with at most n leading rows. The rows are shared.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return &Table{Columns: t.Columns, Rows: t.Rows}
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Filter returns the rows whose named column equals value exactly.
// An unknown column yields an empty table with the same columns.
func (t *Table) Filter(name, value string) *Table {
	out := &Table{Columns: t.Columns, Rows: [][]string{}}
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return out
	}
	for _, row := range t.Rows {
		if row[idx] == value {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Count is the number of occurrences of a value in a column
type Count struct {
	Value string
	Count int
}

// ValueCounts counts distinct values of the named column, most frequent first.
// Ties keep first-appearance order.
func (t *Table) ValueCounts(name string) []Count {
	values := t.Values(name)
	if values == nil {
		return nil
	}

	order := make(map[string]int)
	var counts []Count
	for _, v := range values {
		i, ok := order[v]
		if !ok {
			order[v] = len(counts)
			counts = append(counts, Count{Value: v})
			i = len(counts) - 1
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// normalizeRow pads or truncates a record to n cells
func normalizeRow(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
