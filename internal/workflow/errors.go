package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrImport is matched by every *ImportError
	ErrImport = errors.New("dataset import failed")

	// ErrDatasetUnavailable means no dataset has been imported or located yet
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrUnsupportedResetScope is matched by every *UnsupportedScopeError
	ErrUnsupportedResetScope = errors.New("unsupported reset scope")
)

// ImportError reports a dataset file that is missing or not tabular
type ImportError struct {
	Path  string
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Cause)
}

func (e *ImportError) Unwrap() error { return e.Cause }

// Is matches ErrImport
func (e *ImportError) Is(target error) bool { return target == ErrImport }

// UnsupportedScopeError names the rejected scope
type UnsupportedScopeError struct {
	Scope string
}

func (e *UnsupportedScopeError) Error() string {
	return fmt.Sprintf("reset type '%s' is not supported", e.Scope)
}

// Is matches ErrUnsupportedResetScope
func (e *UnsupportedScopeError) Is(target error) bool { return target == ErrUnsupportedResetScope }
