package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is a header plus rows of text cells. Rows shorter than the header
// read as blank in the missing positions.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New builds a table and indexes its header. Duplicate column names resolve
// to the first occurrence.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
}

// Shape returns rows and columns, like a data frame shape
func (t *Table) Shape() [2]int {
	if t == nil {
		return [2]int{0, 0}
	}
	return [2]int{len(t.Rows), len(t.Header)}
}

// Len is the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns a copy of the header
func (t *Table) Columns() []string {
	return append([]string(nil), t.Header...)
}

// HasColumn reports whether name is in the header
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	if t.index == nil {
		t.reindex()
	}
	_, ok := t.index[name]
	return ok
}

// MissingColumns returns the names from want absent in the header, in order
func (t *Table) MissingColumns(want ...string) []string {
	var missing []string
	for _, name := range want {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the trimmed value at row i of column name
func (t *Table) Cell(i int, name string) string {
	if !t.HasColumn(name) {
		return ""
	}
	row := t.Rows[i]
	j := t.index[name]
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

// Strings returns the trimmed text of a column
func (t *Table) Strings(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, name)
	}
	return out, nil
}

// Floats parses a column. Blank and non-numeric cells become NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]float64, len(t.Rows))
	for i := range t.Rows {
		out[i] = ParseFloat(t.Cell(i, name))
	}
	return out, nil
}

// ParseFloat parses s, returning NaN when s is blank or not a number.
// A decimal comma is accepted.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// Value converts a cell to its natural JSON type: nil for blank, int64 or
// float64 for numbers, bool for true/false, otherwise the text.
func Value(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// Records returns up to n rows as column-keyed maps with typed values.
// n < 0 returns every row.
func (t *Table) Records(n int) []map[string]any {
	if n < 0 || n > t.Len() {
		n = t.Len()
	}
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rec := make(map[string]any, len(t.Header))
		for _, name := range t.Header {
			if _, seen := rec[name]; seen {
				continue
			}
			rec[name] = Value(t.Cell(i, name))
		}
		out = append(out, rec)
	}
	return out
}

// Select returns a table of the given columns in the given order, keeping
// only the ones that exist.
func (t *Table) Select(columns ...string) *Table {
	var keep []string
	for _, c := range columns {
		if t.HasColumn(c) {
			keep = append(keep, c)
		}
	}
	rows := make([][]string, len(t.Rows))
	for i := range t.Rows {
		row := make([]string, len(keep))
		for j, c := range keep {
			row[j] = t.Cell(i, c)
		}
		rows[i] = row
	}
	return New(keep, rows)
}
