// Package viz derives the analytical views of the ticket dataset.
//
// Each view is a pure function of the canonical dataset. The catalog
// declares, per view, the columns it needs and the artifact it is saved
// as; Capabilities checks a table against the whole catalog once so the
// skip or compute decision lives in one place.
//
// GenerateAll writes the five batch views (price distribution, category
// pricing, host nation effect, venue statistics, weekday demand) and, when
// configured, the correlation matrix and scatter sample that are otherwise
// served live only. Views whose columns are absent are skipped, so a
// partial batch is still a success.
package viz
