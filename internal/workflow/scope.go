package workflow

import (
	"strings"

	"canpulse/internal/config"
)

// Scope names a family of artifacts removed by Reset
type Scope string

const (
	ScopeAll           Scope = "all"
	ScopeMatches       Scope = "matches"
	ScopeStadiums      Scope = "stadiums"
	ScopeTickets       Scope = "tickets"
	ScopePreprocessing Scope = "preprocessing"
	ScopeViz           Scope = "viz"
)

var scopeArtifacts = map[Scope][]string{
	ScopeMatches:       {config.MatchesFile},
	ScopeStadiums:      {config.StadiumsFile},
	ScopeTickets:       {config.TicketsFile},
	ScopePreprocessing: {config.CleanedDatasetFile},
	ScopeViz: {
		config.VizPriceDistributionFile,
		config.VizCategoryPricingFile,
		config.VizTreatmentEffectFile,
		config.VizVenueStatsFile,
		config.VizDayDemandFile,
		config.VizCorrelationFile,
		config.VizScatterSampleFile,
	},
}

// Scopes lists every accepted scope, narrow ones first
func Scopes() []Scope {
	return []Scope{ScopeMatches, ScopeStadiums, ScopeTickets, ScopePreprocessing, ScopeViz, ScopeAll}
}

// ParseScope validates s. An empty string means ScopeAll.
func ParseScope(s string) (Scope, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ScopeAll, nil
	}
	scope := Scope(s)
	if scope == ScopeAll {
		return scope, nil
	}
	if _, ok := scopeArtifacts[scope]; ok {
		return scope, nil
	}
	return "", &UnsupportedScopeError{Scope: s}
}

// Artifacts returns the artifact names the scope covers
func (s Scope) Artifacts() []string {
	if s != ScopeAll {
		return append([]string(nil), scopeArtifacts[s]...)
	}
	var all []string
	for _, narrow := range Scopes()[:len(Scopes())-1] {
		all = append(all, scopeArtifacts[narrow]...)
	}
	return all
}
