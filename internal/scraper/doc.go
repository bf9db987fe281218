// Package scraper extracts tournament fixtures from the rendered calendar page.
//
// The page builds its fixture list client-side, so a plain HTTP GET sees no
// matches. ChromeFetcher drives a headless Chrome through chromedp, waits for
// network activity to settle and for a team name element to appear, then
// hands the rendered markup to Parser, which reads every fixture block with
// goquery.
//
// Engine ties the two together and never writes storage; persisting the
// records is the caller's job.
//
// Failures are reported through two sentinels:
//
//	ErrSourceUnavailable - the page could not be loaded in time
//	ErrExtractionEmpty   - the page loaded but held no fixtures
package scraper
