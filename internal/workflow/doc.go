// Package workflow tracks the preprocessing stages run against the dataset.
//
// A Session holds six independent completion flags (import, cleaning,
// selection, transformation, reduction, modeling), a human readable log
// and the dataset loaded by the last successful import. Flags are advisory:
// completing one stage never requires an earlier one. Operations that need
// data check for the data itself and fail with ErrDatasetUnavailable.
//
// Reset takes a scope naming a family of artifacts. The scope is validated
// before anything changes; a valid reset clears every flag regardless of
// scope and deletes that family's files from the store.
package workflow
