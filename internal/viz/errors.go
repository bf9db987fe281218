package viz

import (
	"errors"
	"fmt"
	"strings"

	"canpulse/internal/workflow"
)

var (
	// ErrDatasetUnavailable means no canonical dataset could be located
	ErrDatasetUnavailable = workflow.ErrDatasetUnavailable

	// ErrColumnMissing is matched by every *ColumnMissingError
	ErrColumnMissing = errors.New("required column missing")
)

// ColumnMissingError names the view and the columns it lacks
type ColumnMissingError struct {
	View    ViewName
	Columns []string
	// AnyOf is set when at least one of Columns would have been enough
	AnyOf bool
}

func (e *ColumnMissingError) Error() string {
	if e.AnyOf {
		return fmt.Sprintf("view %s needs at least one of: %s", e.View, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("view %s needs column(s): %s", e.View, strings.Join(e.Columns, ", "))
}

// Is matches ErrColumnMissing
func (e *ColumnMissingError) Is(target error) bool { return target == ErrColumnMissing }
