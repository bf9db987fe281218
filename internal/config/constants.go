package config

import "time"

// Application constants for the CAN Pulse system
const (
	// Application Info
	AppName    = "CAN Pulse"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (CANPULSE_SERVER_PORT, ...)
	EnvPrefix = "CANPULSE"

	// ConfigFileEnv points at an explicit YAML configuration file
	ConfigFileEnv = "CANPULSE_CONFIG_FILE"
)

// Artifact file names. Every artifact lives flat in the data directory.
const (
	MatchesFile        = "matches.csv"
	StadiumsFile       = "stadiums.csv"
	TicketsFile        = "tickets.csv"
	RawDatasetFile     = "dataset_raw.csv"
	CleanedDatasetFile = "dataset_cleaned.csv"

	VizPriceDistributionFile = "viz_price_distribution.csv"
	VizCategoryPricingFile   = "viz_category_pricing.csv"
	VizTreatmentEffectFile   = "viz_morocco_effect.csv"
	VizVenueStatsFile        = "viz_venue_stats.csv"
	VizDayDemandFile         = "viz_day_demand.csv"
	VizCorrelationFile       = "viz_correlation.csv"
	VizScatterSampleFile     = "viz_scatter_sample.csv"
)

// Extraction defaults
const (
	DefaultCalendarURL       = "https://www.cafonline.com/fr/can2025/calendrier-resultats/"
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
	DefaultMarkerSelector    = ".Opta-TeamName"
	DefaultFixtureSelector   = ".Opta-fixture"
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSelectorTimeout   = 15 * time.Second
)

// View generation defaults
const (
	DefaultHistogramBins = 15
	DefaultSampleSize    = 500
	DefaultPreviewRows   = 5
)
