package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	in := New(
		[]string{" Ville ", "Prix_Final_MAD"},
		[][]string{
			{"Rabat ", "1200"},
			{"", "  "},
			{"Rabat", "1200"},
			{"Agadir", "150", "extra"},
			{"Fès"},
		},
	)

	out, stats := Clean(in)

	assert.Equal(t, []string{"Ville", "Prix_Final_MAD"}, out.Header)
	assert.Equal(t, [][]string{
		{"Rabat", "1200"},
		{"Agadir", "150"},
		{"Fès", ""},
	}, out.Rows)
	assert.Equal(t, CleanStats{RowsIn: 5, RowsOut: 3, EmptyRows: 1, DuplicateRows: 1}, stats)

	// input untouched
	assert.Equal(t, "Rabat ", in.Rows[0][0])
}
