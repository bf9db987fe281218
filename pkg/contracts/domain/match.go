package domain

import (
	"time"
)

// Default values applied when a fixture does not carry the information
const (
	DefaultMatchStatus = "Scheduled"
	DefaultMatchStage  = "Group"
)

// MatchRecord represents one fixture extracted from the tournament calendar page.
// Pointer fields are nil when the source element or attribute was absent.
type MatchRecord struct {
	MatchID    *string    `json:"match_id"`
	Date       *time.Time `json:"date"`
	Status     string     `json:"status"`
	Stage      string     `json:"stage"`
	HomeTeam   *string    `json:"home_team"`
	AwayTeam   *string    `json:"away_team"`
	HomeScore  *int       `json:"home_score"`
	AwayScore  *int       `json:"away_score"`
	WinnerSide *string    `json:"winner_side"`
	IsDraw     bool       `json:"is_draw"`
	Stadium    *string    `json:"stadium"`
}

// MatchColumns is the fixed column order of the matches artifact
var MatchColumns = []string{
	"match_id", "date", "status", "stage",
	"home_team", "away_team", "home_score", "away_score",
	"winner_side", "is_draw", "stadium",
}

// ComputeDraw reports whether both scores are present and equal.
func ComputeDraw(home, away *int) bool {
	if home == nil || away == nil {
		return false
	}
	return *home == *away
}
