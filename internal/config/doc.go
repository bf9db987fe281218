// Package config provides centralized configuration management for CAN Pulse.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (config.yaml or $CANPULSE_CONFIG_FILE)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CANPULSE_<SECTION>_<FIELD>:
//
//	CANPULSE_SERVER_PORT=5001
//	CANPULSE_PATHS_DATA_DIR=/srv/can/data
//	CANPULSE_SCRAPER_NAVIGATION_TIMEOUT=60s
//	CANPULSE_VIZ_SAMPLE_SEED=42
//
// # Path Management
//
// Every artifact lives flat in the data directory. Paths resolves artifact
// names to absolute locations:
//
//	paths, _ := config.GetPaths(cfg.Paths)
//	canonical := paths.CleanedDatasetPath()
//	matches := paths.ArtifactPath(config.MatchesFile)
package config
