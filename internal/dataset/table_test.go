package dataset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return New(
		[]string{"Ville", "Prix_Final_MAD", "Indice_Demande"},
		[][]string{
			{"Rabat", "1200", "9.5"},
			{" Agadir ", "", "4,2"},
			{"Fès", "n/a"},
		},
	)
}

func TestTable_Shape(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, [2]int{3, 3}, tbl.Shape())
	assert.Equal(t, 3, tbl.Len())

	var nilTable *Table
	assert.Equal(t, [2]int{0, 0}, nilTable.Shape())
	assert.False(t, nilTable.HasColumn("Ville"))
}

func TestTable_Floats(t *testing.T) {
	prices, err := sampleTable().Floats("Prix_Final_MAD")
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, 1200.0, prices[0])
	assert.True(t, math.IsNaN(prices[1]))
	assert.True(t, math.IsNaN(prices[2]))

	demand, err := sampleTable().Floats("Indice_Demande")
	require.NoError(t, err)
	assert.Equal(t, 4.2, demand[1])
	assert.True(t, math.IsNaN(demand[2]), "short row reads blank")

	_, err = sampleTable().Floats("Categorie")
	assert.Error(t, err)
}

func TestTable_Strings(t *testing.T) {
	cities, err := sampleTable().Strings("Ville")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rabat", "Agadir", "Fès"}, cities)
}

func TestTable_MissingColumns(t *testing.T) {
	assert.Equal(t, []string{"Categorie"}, sampleTable().MissingColumns("Ville", "Categorie"))
	assert.Empty(t, sampleTable().MissingColumns("Ville"))
}

func TestTable_Records(t *testing.T) {
	got := sampleTable().Records(2)
	want := []map[string]any{
		{"Ville": "Rabat", "Prix_Final_MAD": int64(1200), "Indice_Demande": 9.5},
		{"Ville": "Agadir", "Prix_Final_MAD": nil, "Indice_Demande": "4,2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, sampleTable().Records(-1), 3)
	assert.Len(t, sampleTable().Records(10), 3)
}

func TestTable_Select(t *testing.T) {
	sel := sampleTable().Select("Indice_Demande", "Categorie", "Ville")
	assert.Equal(t, []string{"Indice_Demande", "Ville"}, sel.Header)
	assert.Equal(t, []string{"9.5", "Rabat"}, sel.Rows[0])
	assert.Equal(t, []string{"", "Fès"}, sel.Rows[2])
}

func TestValue(t *testing.T) {
	assert.Nil(t, Value("  "))
	assert.Equal(t, int64(7), Value("7"))
	assert.Equal(t, 7.5, Value("7.5"))
	assert.Equal(t, true, Value("True"))
	assert.Equal(t, "NaN", Value("NaN"))
	assert.Equal(t, "Maroc", Value("Maroc"))
}
