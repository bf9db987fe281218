package exporter

import (
	"math"
	"strconv"
	"time"
)

// TimeLayout is how timestamps appear in artifacts
const TimeLayout = "2006-01-02 15:04:05"

// FormatFloat renders the shortest representation that round-trips.
// NaN and infinities become empty cells.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatOptionalFloat renders nil as an empty cell
func FormatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}

// FormatOptionalInt renders nil as an empty cell
func FormatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

// FormatOptionalString renders nil as an empty cell
func FormatOptionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatBool formats a boolean value for CSV output
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// FormatTime renders t in UTC; nil is an empty cell
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
