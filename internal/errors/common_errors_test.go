package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewAppError(ErrTypeValidation, "bad scope", nil),
			want: "[VALIDATION] bad scope",
		},
		{
			name: "with cause",
			err:  NewStorageError("save failed", errors.New("disk full")),
			want: "[STORAGE] save failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := fmt.Errorf("outer: %w", NewParsingError("bad row", sentinel))

	assert.ErrorIs(t, err, sentinel)

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewStorageError("failed to delete viz_correlation.csv", nil).
		WithContext("artifact", "viz_correlation.csv").
		WithContext("scope", "viz")

	assert.Equal(t, "viz_correlation.csv", err.Context["artifact"])
	assert.Equal(t, "viz", err.Context["scope"])
}
