package dataset

import (
	"strings"
)

// CleanStats counts what Clean removed
type CleanStats struct {
	RowsIn        int `json:"rows_in"`
	RowsOut       int `json:"rows_out"`
	EmptyRows     int `json:"empty_rows"`
	DuplicateRows int `json:"duplicate_rows"`
}

// Clean returns a new table with every cell trimmed, rows padded or cut to
// the header width, and fully blank rows and exact duplicates removed. The
// first occurrence of a duplicate is kept.
func Clean(t *Table) (*Table, CleanStats) {
	stats := CleanStats{RowsIn: t.Len()}
	width := len(t.Header)

	header := make([]string, width)
	for i, h := range t.Header {
		header[i] = strings.TrimSpace(h)
	}

	seen := make(map[string]struct{}, t.Len())
	rows := make([][]string, 0, t.Len())
	for _, raw := range t.Rows {
		row := make([]string, width)
		blank := true
		for j := 0; j < width && j < len(raw); j++ {
			row[j] = strings.TrimSpace(raw[j])
			if row[j] != "" {
				blank = false
			}
		}
		if blank {
			stats.EmptyRows++
			continue
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			stats.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}

	stats.RowsOut = len(rows)
	return New(header, rows), stats
}
