package reference

import (
	"canpulse/pkg/contracts/domain"
)

// DefaultTicketsUpdated is the publication date of the current price grid
const DefaultTicketsUpdated = "2026-02-07"

// Stages of the tournament, in playing order
var Stages = []string{"Group Stage", "Round of 16", "Quarter-final", "Semi-final", "Final"}

// Categories are the seating categories, most expensive first
var Categories = []string{"Category 1", "Category 2", "Category 3"}

var basePrices = map[string]float64{
	"Group Stage":   100,
	"Round of 16":   200,
	"Quarter-final": 350,
	"Semi-final":    600,
	"Final":         1200,
}

var categoryMultipliers = map[string]float64{
	"Category 1": 2.5,
	"Category 2": 1.5,
	"Category 3": 1.0,
}

// Stadiums returns the six host venues
func Stadiums() []domain.Stadium {
	return []domain.Stadium{
		{Name: "Prince Moulay Abdellah Stadium", City: "Rabat", Capacity: 68700, PitchSurface: "Hybrid Grass", PitchType: "Natural reinforced"},
		{Name: "Grand Stade de Tanger", City: "Tangier", Capacity: 75000, PitchSurface: "Hybrid Grass", PitchType: "Natural reinforced"},
		{Name: "Stade Mohammed V", City: "Casablanca", Capacity: 45000, PitchSurface: "Hybrid Grass", PitchType: "Natural reinforced"},
		{Name: "Adrar Stadium", City: "Agadir", Capacity: 45480, PitchSurface: "Natural Grass", PitchType: "Natural"},
		{Name: "Marrakech Stadium", City: "Marrakech", Capacity: 45000, PitchSurface: "Natural Grass", PitchType: "Natural"},
		{Name: "Fez Stadium", City: "Fez", Capacity: 45000, PitchSurface: "Natural Grass", PitchType: "Natural"},
	}
}

// TicketTiers builds the price grid for every stage and category. The upper
// bound of a band is 20% above its floor, both truncated to whole dirhams.
func TicketTiers(lastUpdated string) []domain.TicketTier {
	if lastUpdated == "" {
		lastUpdated = DefaultTicketsUpdated
	}

	tiers := make([]domain.TicketTier, 0, len(Stages)*len(Categories))
	for _, stage := range Stages {
		availability := "Limited"
		if stage == "Group Stage" {
			availability = "High"
		}
		for _, category := range Categories {
			priceMin := basePrices[stage] * categoryMultipliers[category]
			tiers = append(tiers, domain.TicketTier{
				Stage:        stage,
				Category:     category,
				PriceMinMAD:  int(priceMin),
				PriceMaxMAD:  int(priceMin * 1.2),
				Availability: availability,
				LastUpdated:  lastUpdated,
			})
		}
	}
	return tiers
}
