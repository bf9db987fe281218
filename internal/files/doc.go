// Package files is the tabular store: named artifacts kept flat in one
// data directory.
//
// Store offers existence checks, load, save, delete and row counts. It
// also resolves the canonical dataset (the cleaned artifact, falling back
// to the raw import) and lists what the directory currently holds.
//
// Example usage:
//
//	store := files.NewStore(paths, logger)
//	if store.Exists(config.MatchesFile) {
//	    table, err := store.Load(config.MatchesFile)
//	}
package files
