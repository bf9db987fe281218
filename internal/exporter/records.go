package exporter

import (
	"strconv"

	"canpulse/pkg/contracts/domain"
)

// MatchRows converts extracted matches into rows in domain.MatchColumns order
func MatchRows(matches []domain.MatchRecord) [][]string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			FormatOptionalString(m.MatchID),
			FormatTime(m.Date),
			m.Status,
			m.Stage,
			FormatOptionalString(m.HomeTeam),
			FormatOptionalString(m.AwayTeam),
			FormatOptionalInt(m.HomeScore),
			FormatOptionalInt(m.AwayScore),
			FormatOptionalString(m.WinnerSide),
			FormatBool(m.IsDraw),
			FormatOptionalString(m.Stadium),
		})
	}
	return rows
}

// StadiumRows converts venues into rows in domain.StadiumColumns order
func StadiumRows(stadiums []domain.Stadium) [][]string {
	rows := make([][]string, 0, len(stadiums))
	for _, s := range stadiums {
		rows = append(rows, []string{
			s.Name,
			s.City,
			strconv.Itoa(s.Capacity),
			s.PitchSurface,
			s.PitchType,
		})
	}
	return rows
}

// TicketRows converts ticket tiers into rows in domain.TicketColumns order
func TicketRows(tiers []domain.TicketTier) [][]string {
	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, []string{
			t.Stage,
			t.Category,
			strconv.Itoa(t.PriceMinMAD),
			strconv.Itoa(t.PriceMaxMAD),
			t.Availability,
			t.LastUpdated,
		})
	}
	return rows
}
