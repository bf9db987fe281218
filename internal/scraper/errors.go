package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means the page failed to load or the marker
	// element never appeared within the configured timeouts
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrExtractionEmpty means the page loaded but no fixture matched
	ErrExtractionEmpty = errors.New("scraper found 0 fixtures; the site structure might have changed or blocked the request")
)

// SourceError carries the URL and the browser failure behind ErrSourceUnavailable
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.URL, e.Err)
}

// Is reports ErrSourceUnavailable so callers can match with errors.Is
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
