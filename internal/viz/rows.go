package viz

import (
	"strconv"

	"canpulse/internal/exporter"
	"canpulse/pkg/contracts/domain"
)

func histogramRows(bins []domain.HistogramBin) [][]string {
	rows := make([][]string, len(bins))
	for i, b := range bins {
		rows[i] = []string{b.Label, strconv.Itoa(b.Count)}
	}
	return rows
}

func categoryRows(stats []domain.CategoryPricing) [][]string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Category,
			exporter.FormatOptionalFloat(s.Min),
			exporter.FormatOptionalFloat(s.Mean),
			exporter.FormatOptionalFloat(s.Median),
			exporter.FormatOptionalFloat(s.Max),
		}
	}
	return rows
}

func treatmentRows(effects []domain.TreatmentEffect) [][]string {
	rows := make([][]string, len(effects))
	for i, e := range effects {
		rows[i] = []string{
			exporter.FormatOptionalString(e.Group),
			exporter.FormatOptionalFloat(e.MeanPrice),
			exporter.FormatOptionalFloat(e.MeanDemand),
		}
	}
	return rows
}

func venueRows(stats []domain.VenueStats) [][]string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Venue,
			exporter.FormatOptionalFloat(s.MeanPrice),
			exporter.FormatOptionalFloat(s.MeanDemand),
		}
	}
	return rows
}

func dayRows(days []domain.DayDemand) [][]string {
	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{d.Day, exporter.FormatOptionalFloat(d.MeanDemand)}
	}
	return rows
}

func correlationRows(cells []domain.CorrelationCell) [][]string {
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c.Var1, c.Var2, exporter.FormatOptionalFloat(c.Correlation)}
	}
	return rows
}

func scatterRows(columns []string, points []domain.ScatterPoint) [][]string {
	rows := make([][]string, len(points))
	for i, p := range points {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = formatValue(p[c])
		}
		rows[i] = row
	}
	return rows
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return exporter.FormatFloat(x)
	case bool:
		return exporter.FormatBool(x)
	default:
		return ""
	}
}
