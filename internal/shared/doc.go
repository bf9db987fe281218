// Package shared holds code used across packages that belongs to no single
// domain. Today that is only the testutil subpackage: a log-capturing slog
// handler and CAN ticket dataset fixtures used by the workflow, viz,
// services and transport tests.
package shared
