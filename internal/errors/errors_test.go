package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Render(t *testing.T) {
	tests := []struct {
		name       string
		apiError   *APIError
		wantStatus int
	}{
		{name: "bad request", apiError: InvalidRequestWithError(errors.New("EOF")), wantStatus: http.StatusBadRequest},
		{name: "rate limited", apiError: ErrRateLimitExceeded, wantStatus: http.StatusTooManyRequests},
		{name: "file system", apiError: FileSystemError("listing", errors.New("EACCES")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, render.Render(w, r, tt.apiError))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.apiError.ErrorCode, body.ErrorCode)
		})
	}
}

func TestHelpers(t *testing.T) {
	err := InvalidRequestWithError(errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "unexpected EOF", err.Details)

	fs := FileSystemError("save", errors.New("disk full"))
	assert.Equal(t, "FILESYSTEM_ERROR", fs.ErrorCode)
	assert.Contains(t, fs.Message, "save")

	ve := NewValidationErrors([]ValidationError{{Field: "type", Message: "required"}})
	assert.Equal(t, "VALIDATION_FAILED", ve.ErrorCode)
	assert.Len(t, ve.Details, 1)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "missing", "/api/viz/correlation").
		WithExtension("trace_id", "abc")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, TypeNotFound, got["type"])
	assert.EqualValues(t, 404, got["status"])
	assert.Equal(t, "missing", got["detail"])
	assert.Equal(t, "/api/viz/correlation", got["instance"])
	assert.Equal(t, "abc", got["trace_id"])
}

func TestProblemDetails_ExtensionsCannotOverrideMembers(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "", "").
		WithExtension("status", 200)

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.EqualValues(t, 400, got["status"])
	assert.NotContains(t, got, "detail")
}
