package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErr    error
		wantHeader []string
		wantRows   int
	}{
		{
			name:       "plain",
			input:      "Categorie,Prix_Final_MAD\nCatégorie 1,1200\nCatégorie 2,600\n",
			wantHeader: []string{"Categorie", "Prix_Final_MAD"},
			wantRows:   2,
		},
		{
			name:       "utf8 bom and padded header",
			input:      "\xEF\xBB\xBF Categorie , Prix_Final_MAD\nCatégorie 1,1200\n",
			wantHeader: []string{"Categorie", "Prix_Final_MAD"},
			wantRows:   1,
		},
		{
			name:       "ragged rows",
			input:      "a,b,c\n1,2\n1,2,3,4\n",
			wantHeader: []string{"a", "b", "c"},
			wantRows:   2,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmpty,
		},
		{
			name:    "binary image bytes",
			input:   "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x01\x00",
			wantErr: ErrNotText,
		},
		{
			name:    "latin-1 text",
			input:   "Categorie,Ville\nCat\xe9gorie 1,F\xe8s\n",
			wantErr: ErrNotText,
		},
		{
			name:    "nul byte in valid utf8",
			input:   "a,b\n1,\x002\n",
			wantErr: ErrNotText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, tbl.Header)
			assert.Equal(t, tt.wantRows, tbl.Len())
		})
	}
}

func TestLoad_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset_raw.csv")
	require.NoError(t, os.WriteFile(path, []byte("Ville,Indice_Demande\nRabat,9.5\n"), 0644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Rabat", tbl.Cell(0, "Ville"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billets.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Jour_Semaine", "Indice_Demande"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Lundi", 6.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Mercredi", 8}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jour_Semaine", "Indice_Demande"}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())

	demand, err := tbl.Floats("Indice_Demande")
	require.NoError(t, err)
	assert.Equal(t, []float64{6.5, 8}, demand)
}

func TestLoad_CorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
