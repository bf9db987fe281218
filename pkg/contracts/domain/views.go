package domain

// HistogramBin is one bucket of the price distribution view
type HistogramBin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryPricing holds price statistics for one seating category
type CategoryPricing struct {
	Category string   `json:"Categorie"`
	Min      *float64 `json:"min"`
	Mean     *float64 `json:"mean"`
	Median   *float64 `json:"median"`
	Max      *float64 `json:"max"`
}

// TreatmentEffect compares matches with and without the host nation.
// Group is nil when the indicator held a value other than 0 or 1.
type TreatmentEffect struct {
	Group      *string  `json:"Effet_Maroc"`
	MeanPrice  *float64 `json:"Prix_Final_MAD"`
	MeanDemand *float64 `json:"Indice_Demande"`
}

// VenueStats aggregates price and demand per host city
type VenueStats struct {
	Venue      string   `json:"Ville"`
	MeanPrice  *float64 `json:"Prix_Final_MAD"`
	MeanDemand *float64 `json:"Indice_Demande"`
}

// DayDemand is the mean demand index for one weekday
type DayDemand struct {
	Day        string   `json:"Jour_Semaine"`
	MeanDemand *float64 `json:"Indice_Demande"`
}

// CorrelationCell is one unstacked entry of the correlation matrix.
// Correlation is nil when the coefficient is undefined (constant column).
type CorrelationCell struct {
	Var1        string   `json:"var1"`
	Var2        string   `json:"var2"`
	Correlation *float64 `json:"correlation"`
}

// ScatterPoint is one sampled row; keys are the source column names
type ScatterPoint map[string]any
