// Package exporter writes tabular artifacts as CSV files.
//
// CSVWriter resolves relative names against the data directory and replaces
// files atomically. The Format helpers and the *Rows converters turn domain
// records into string cells, with nil values rendered as empty cells.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths, logger)
//	err := w.WriteSimpleCSV(config.MatchesFile, domain.MatchColumns, exporter.MatchRows(matches))
package exporter
