package domain

// Stadium describes a host venue
type Stadium struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Capacity     int    `json:"capacity"`
	PitchSurface string `json:"pitch_surface"`
	PitchType    string `json:"pitch_type"`
}

// StadiumColumns is the column order of the stadiums artifact
var StadiumColumns = []string{"name", "city", "capacity", "pitch_surface", "pitch_type"}

// TicketTier is the published price band for a stage and seating category
type TicketTier struct {
	Stage        string `json:"stage"`
	Category     string `json:"category"`
	PriceMinMAD  int    `json:"price_min_MAD"`
	PriceMaxMAD  int    `json:"price_max_MAD"`
	Availability string `json:"availability"`
	LastUpdated  string `json:"last_updated"`
}

// TicketColumns is the column order of the tickets artifact
var TicketColumns = []string{"stage", "category", "price_min_MAD", "price_max_MAD", "availability", "last_updated"}

// DataSummary reports how many rows each known artifact holds
type DataSummary struct {
	Matches  int `json:"matches"`
	Stadiums int `json:"stadiums"`
	Tickets  int `json:"tickets"`
	Dataset  int `json:"dataset"`
}
