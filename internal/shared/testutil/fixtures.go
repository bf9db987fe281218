package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DatasetHeader is the column set of the CAN ticket dataset fixtures
var DatasetHeader = []string{
	"Categorie", "Prix_Final_MAD", "Indice_Demande", "Effet_Maroc", "Ville", "Jour_Semaine",
	"Taux_Rareté", "Score_Visibilite", "Score_Rivalite", "Valeur_Marchande_Totale_MEUR", "Index_Stars_Total",
}

// DatasetRows returns six ticket rows covering three categories, both
// treatment groups and four weekdays.
func DatasetRows() [][]string {
	return [][]string{
		{"Catégorie 1", "1200", "9.5", "1", "Rabat", "Samedi", "0.9", "8", "7", "250.5", "12"},
		{"Catégorie 2", "600", "7", "0", "Casablanca", "Dimanche", "0.6", "6", "5", "120", "6"},
		{"Catégorie 3", "150", "4.2", "0", "Agadir", "Mercredi", "0.3", "4", "3", "80", "3"},
		{"Catégorie 1", "900", "8.8", "1", "Tanger", "Lundi", "0.8", "7", "6", "200", "10"},
		{"Catégorie 2", "450", "6.1", "0", "Fès", "Mercredi", "0.5", "5", "4", "110", "5"},
		{"Catégorie 3", "100", "3.5", "0", "Marrakech", "Samedi", "0.2", "3", "2", "60", "2"},
	}
}

// WriteCSV writes header and rows to path, failing the test on error
func WriteCSV(t *testing.T, path string, header []string, rows [][]string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return path
}

// WriteDataset writes the fixture dataset under dir with the given name
func WriteDataset(t *testing.T, dir, name string) string {
	t.Helper()
	return WriteCSV(t, filepath.Join(dir, name), DatasetHeader, DatasetRows())
}

// Fixture describes one match block of the calendar page markup.
// Empty fields leave the corresponding attribute or element out.
type Fixture struct {
	ID        string
	DateMS    string
	Stage     string
	Winner    string
	Status    string
	HomeTeam  string
	AwayTeam  string
	HomeScore string
	AwayScore string
	NoScores  bool
}

// CalendarHTML renders a calendar page with the given fixtures, shaped like
// the Opta widget markup served by the tournament site.
func CalendarHTML(fixtures ...Fixture) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="Opta-Fixtures">`)
	for _, f := range fixtures {
		b.WriteString(`<div class="Opta-fixture"`)
		writeAttr(&b, "data-match", f.ID)
		writeAttr(&b, "data-date", f.DateMS)
		writeAttr(&b, "data-competition_stage", f.Stage)
		writeAttr(&b, "data-match_winner_side", f.Winner)
		b.WriteString(">")
		if f.Status != "" {
			fmt.Fprintf(&b, `<span class="Opta-Status"><abbr title="status">%s</abbr></span>`, f.Status)
		}
		if f.HomeTeam != "" {
			fmt.Fprintf(&b, `<div class="Opta-Team Opta-Home"><span class="Opta-TeamName"> %s </span></div>`, f.HomeTeam)
		}
		if !f.NoScores {
			fmt.Fprintf(&b, `<div class="Opta-Score Opta-Home"><span class="Opta-Team-Score">%s</span></div>`, f.HomeScore)
			fmt.Fprintf(&b, `<div class="Opta-Score Opta-Away"><span class="Opta-Team-Score">%s</span></div>`, f.AwayScore)
		}
		if f.AwayTeam != "" {
			fmt.Fprintf(&b, `<div class="Opta-Team Opta-Away"><span class="Opta-TeamName">%s</span></div>`, f.AwayTeam)
		}
		b.WriteString("</div>")
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, ` %s="%s"`, name, value)
	}
}
