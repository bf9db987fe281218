package viz

import (
	"math"
	"sort"
)

// histogram counts finite values into n equal-width bins spanning
// [min, max]. A constant sample widens the range by 0.5 on each side and an
// empty one spans [0, 1]. Every bin is half-open except the last, which
// includes max.
func histogram(values []float64, n int) (counts []int, edges []float64) {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	first, last := 0.0, 1.0
	if len(finite) > 0 {
		first, last = finite[0], finite[0]
		for _, v := range finite[1:] {
			first = math.Min(first, v)
			last = math.Max(last, v)
		}
	}
	if first == last {
		first -= 0.5
		last += 0.5
	}

	edges = linspace(first, last, n+1)
	counts = make([]int, n)
	norm := float64(n) / (last - first)
	for _, v := range finite {
		i := int((v - first) * norm)
		if i == n {
			i--
		}
		// float error can land a value one bin off its edges
		if v < edges[i] {
			i--
		} else if i != n-1 && v >= edges[i+1] {
			i++
		}
		counts[i]++
	}
	return counts, edges
}

func linspace(start, stop float64, num int) []float64 {
	out := make([]float64, num)
	div := float64(num - 1)
	step := (stop - start) / div
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[num-1] = stop
	return out
}

// mean of the non-NaN values; NaN when there are none
func mean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// summary returns min, mean, median and max of the non-NaN values
func summary(values []float64) (lo, avg, med, hi float64) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		nan := math.NaN()
		return nan, nan, nan, nan
	}
	sort.Float64s(sorted)

	n := len(sorted)
	med = sorted[n/2]
	if n%2 == 0 {
		med = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[0], mean(sorted), med, sorted[n-1]
}

// pearson correlates the pairs where both values are present. It is NaN
// when fewer than two pairs remain or either side has no variance.
func pearson(x, y []float64) float64 {
	var n int
	var meanX, meanY, ssX, ssY, cov float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		n++
		dx := x[i] - meanX
		dy := y[i] - meanY
		meanX += dx / float64(n)
		meanY += dy / float64(n)
		ssX += (x[i] - meanX) * dx
		ssY += (y[i] - meanY) * dy
		cov += (x[i] - meanX) * dy
	}
	if n < 2 {
		return math.NaN()
	}
	div := math.Sqrt(ssX * ssY)
	if div == 0 {
		return math.NaN()
	}
	return cov / div
}

// round2 rounds half to even at two decimals
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.RoundToEven(v*100) / 100
}

// optional maps NaN to nil
func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
