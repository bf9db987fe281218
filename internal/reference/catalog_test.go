package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStadiums(t *testing.T) {
	stadiums := Stadiums()

	require.Len(t, stadiums, 6)
	assert.Equal(t, "Rabat", stadiums[0].City)
	assert.Equal(t, 75000, stadiums[1].Capacity)

	for _, s := range stadiums {
		assert.NotEmpty(t, s.Name)
		assert.Positive(t, s.Capacity)
	}
}

func TestTicketTiers(t *testing.T) {
	tiers := TicketTiers("")

	require.Len(t, tiers, 15)

	tests := []struct {
		index    int
		stage    string
		category string
		min, max int
		avail    string
	}{
		{0, "Group Stage", "Category 1", 250, 300, "High"},
		{1, "Group Stage", "Category 2", 150, 180, "High"},
		{2, "Group Stage", "Category 3", 100, 120, "High"},
		{7, "Quarter-final", "Category 2", 525, 630, "Limited"},
		{14, "Final", "Category 3", 1200, 1440, "Limited"},
	}
	for _, tt := range tests {
		t.Run(tt.stage+"/"+tt.category, func(t *testing.T) {
			tier := tiers[tt.index]
			assert.Equal(t, tt.stage, tier.Stage)
			assert.Equal(t, tt.category, tier.Category)
			assert.Equal(t, tt.min, tier.PriceMinMAD)
			assert.Equal(t, tt.max, tier.PriceMaxMAD)
			assert.Equal(t, tt.avail, tier.Availability)
			assert.Equal(t, DefaultTicketsUpdated, tier.LastUpdated)
		})
	}
}

func TestTicketTiers_LastUpdated(t *testing.T) {
	for _, tier := range TicketTiers("2026-03-01") {
		assert.Equal(t, "2026-03-01", tier.LastUpdated)
	}
}
