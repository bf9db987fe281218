// Package services orchestrates the core packages for the HTTP layer and the
// command line tools.
//
// Services own what the core leaves out: persisting extraction results,
// locating the canonical dataset, tracing, business metrics and status feed
// events. They hold no interpretation logic of their own; errors from the
// core are returned wrapped so handlers can still match them with errors.Is.
//
// Every service takes its collaborators through its constructor:
//
//	store := files.NewStore(paths, logger)
//	scrape := services.NewScrapeService(engine, store, services.ScrapeOptions{URL: cfg.Scraper.URL}, metrics, hub, logger)
//	matches, err := scrape.ScrapeMatches(ctx, "")
package services
