// Package api contains the request and response contracts of the HTTP API.
// Version v1 is the current API version.
package api

import (
	"canpulse/pkg/contracts/domain"
)

// ScrapeMatchesRequest selects the calendar page to extract. An empty URL
// uses the configured default.
type ScrapeMatchesRequest struct {
	URL string `json:"url,omitempty" validate:"omitempty,http_url,max=2048"`
}

// ResetRequest names the artifact scope to delete. An empty type means all.
type ResetRequest struct {
	Type string `json:"type" validate:"omitempty,max=32"`
}

// ImportRequest imports a dataset already present in the data directory.
// An empty filename imports the raw upload target.
type ImportRequest struct {
	Filename string `json:"filename,omitempty" validate:"omitempty,datasetfile"`
}

// TicketsRequest overrides the publication date of the price grid
type TicketsRequest struct {
	LastUpdated string `json:"last_updated,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// MatchesResponse is returned by a successful match extraction
type MatchesResponse struct {
	Message string               `json:"message"`
	Count   int                  `json:"count"`
	Data    []domain.MatchRecord `json:"data"`
}

// StadiumsResponse is returned by the venue catalog run
type StadiumsResponse struct {
	Message string           `json:"message"`
	Data    []domain.Stadium `json:"data"`
}

// TicketsResponse is returned by the ticket grid run
type TicketsResponse struct {
	Message string              `json:"message"`
	Data    []domain.TicketTier `json:"data"`
}

// SummaryResponse wraps the artifact row counts
type SummaryResponse struct {
	Datasets domain.DataSummary `json:"datasets"`
}

// GenerateAllResponse lists the written view artifacts
type GenerateAllResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// ScatterResponse carries the sampled rows and the columns they hold
type ScatterResponse struct {
	Columns []string              `json:"columns"`
	Data    []domain.ScatterPoint `json:"data"`
}
