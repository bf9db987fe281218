package viz

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"canpulse/internal/dataset"
	"canpulse/pkg/contracts/domain"
)

// Treatment group labels
const (
	TreatmentHost  = "Maroc"
	TreatmentOther = "Autres"
)

// PriceDistribution bins the price column. Labels are the bin edges
// truncated toward zero.
func PriceDistribution(t *dataset.Table, bins int) []domain.HistogramBin {
	prices, _ := t.Floats(ColPrice)
	counts, edges := histogram(prices, bins)

	out := make([]domain.HistogramBin, len(counts))
	for i, c := range counts {
		out[i] = domain.HistogramBin{
			Label: fmt.Sprintf("%d-%d", int(edges[i]), int(edges[i+1])),
			Count: c,
		}
	}
	return out
}

// CategoryPricing summarises prices per category, categories in ascending order
func CategoryPricing(t *dataset.Table) []domain.CategoryPricing {
	prices, _ := t.Floats(ColPrice)
	groups := groupBy(t, ColCategory, textKey, textLess)

	out := make([]domain.CategoryPricing, 0, len(groups))
	for _, g := range groups {
		lo, avg, med, hi := summary(pick(prices, g.rows))
		out = append(out, domain.CategoryPricing{
			Category: g.key,
			Min:      optional(lo),
			Mean:     optional(avg),
			Median:   optional(med),
			Max:      optional(hi),
		})
	}
	return out
}

// TreatmentEffect compares mean price and demand between host nation
// matches (1) and the others (0). Any other indicator value keeps its own
// row with a nil label.
func TreatmentEffect(t *dataset.Table) []domain.TreatmentEffect {
	prices, _ := t.Floats(ColPrice)
	demand, _ := t.Floats(ColDemand)
	groups := groupBy(t, ColTreatment, numericKey, numericLess)

	out := make([]domain.TreatmentEffect, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.TreatmentEffect{
			Group:      treatmentLabel(g.key),
			MeanPrice:  optional(mean(pick(prices, g.rows))),
			MeanDemand: optional(mean(pick(demand, g.rows))),
		})
	}
	return out
}

func treatmentLabel(key string) *string {
	var label string
	switch dataset.ParseFloat(key) {
	case 1:
		label = TreatmentHost
	case 0:
		label = TreatmentOther
	default:
		return nil
	}
	return &label
}

// VenueStats averages price and demand per city, most expensive first.
// Cities without any price sort last.
func VenueStats(t *dataset.Table) []domain.VenueStats {
	prices, _ := t.Floats(ColPrice)
	demand, _ := t.Floats(ColDemand)
	groups := groupBy(t, ColVenue, textKey, textLess)

	out := make([]domain.VenueStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.VenueStats{
			Venue:      g.key,
			MeanPrice:  optional(mean(pick(prices, g.rows))),
			MeanDemand: optional(mean(pick(demand, g.rows))),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].MeanPrice, out[j].MeanPrice
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	return out
}

// DayDemand averages demand per weekday in Lundi..Dimanche order. Days that
// never occur are left out; other labels are ignored.
func DayDemand(t *dataset.Table) []domain.DayDemand {
	demand, _ := t.Floats(ColDemand)
	groups := groupBy(t, ColWeekday, textKey, textLess)

	byDay := make(map[string][]int, len(groups))
	for _, g := range groups {
		byDay[g.key] = g.rows
	}

	out := make([]domain.DayDemand, 0, len(Weekdays))
	for _, day := range Weekdays {
		rows, ok := byDay[day]
		if !ok {
			continue
		}
		out = append(out, domain.DayDemand{
			Day:        day,
			MeanDemand: optional(mean(pick(demand, rows))),
		})
	}
	return out
}

// Correlation returns the full pairwise matrix of the available correlation
// columns, row by row, diagonal included. Coefficients are rounded to two
// decimals; undefined ones are nil.
func Correlation(t *dataset.Table) []domain.CorrelationCell {
	var cols []string
	var data [][]float64
	for _, c := range CorrelationColumns {
		if values, err := t.Floats(c); err == nil {
			cols = append(cols, c)
			data = append(data, values)
		}
	}

	out := make([]domain.CorrelationCell, 0, len(cols)*len(cols))
	for i := range cols {
		for j := range cols {
			out = append(out, domain.CorrelationCell{
				Var1:        cols[i],
				Var2:        cols[j],
				Correlation: optional(round2(pearson(data[i], data[j]))),
			})
		}
	}
	return out
}

// ScatterSample draws up to n rows without replacement, keeping the
// available scatter columns. A nil rng uses the unseeded global source.
func ScatterSample(t *dataset.Table, n int, rng *rand.Rand) (columns []string, points []domain.ScatterPoint) {
	sub := t.Select(ScatterColumns...)
	if n > sub.Len() {
		n = sub.Len()
	}
	if n < 0 {
		n = 0
	}

	var perm []int
	if rng != nil {
		perm = rng.Perm(sub.Len())
	} else {
		perm = rand.Perm(sub.Len())
	}

	points = make([]domain.ScatterPoint, 0, n)
	for _, i := range perm[:n] {
		p := make(domain.ScatterPoint, len(sub.Header))
		for _, c := range sub.Header {
			p[c] = dataset.Value(sub.Cell(i, c))
		}
		points = append(points, p)
	}
	return sub.Columns(), points
}

type group struct {
	key  string
	rows []int
}

// groupBy collects row indices per key. Rows whose key function rejects
// the cell (blank) are dropped. Groups come back sorted by less.
func groupBy(t *dataset.Table, col string, key func(string) (string, bool), less func(a, b string) bool) []group {
	index := map[string]int{}
	var groups []group
	for i := 0; i < t.Len(); i++ {
		k, ok := key(t.Cell(i, col))
		if !ok {
			continue
		}
		gi, seen := index[k]
		if !seen {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, group{key: k})
		}
		groups[gi].rows = append(groups[gi].rows, i)
	}

	sort.Slice(groups, func(i, j int) bool {
		return less(groups[i].key, groups[j].key)
	})
	return groups
}

func textKey(cell string) (string, bool) {
	return cell, cell != ""
}

func textLess(a, b string) bool { return a < b }

// numericKey normalises numbers so 1, 1.0 and 1,0 share a group
func numericKey(cell string) (string, bool) {
	if cell == "" {
		return "", false
	}
	f := dataset.ParseFloat(cell)
	if math.IsNaN(f) {
		return cell, true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// numericLess orders numbers before text, numbers ascending
func numericLess(a, b string) bool {
	fa, fb := dataset.ParseFloat(a), dataset.ParseFloat(b)
	switch {
	case math.IsNaN(fa) && math.IsNaN(fb):
		return a < b
	case math.IsNaN(fa):
		return false
	case math.IsNaN(fb):
		return true
	default:
		return fa < fb
	}
}

func pick(values []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}
