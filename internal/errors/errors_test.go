package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "with_cause",
			err:      NewParsingError("read header", errors.New("unexpected EOF")),
			expected: "[PARSING] read header: unexpected EOF",
		},
		{
			name:     "without_cause",
			err:      NewValidationError("alpha out of range"),
			expected: "[VALIDATION] alpha out of range",
		},
		{
			name:     "not_found",
			err:      NewNotFoundError("series for country XX"),
			expected: "[NOT_FOUND] series for country XX not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("write report", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("export: %w", err)
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewDataError("degenerate denominator", nil).
		WithContext("country", "UK").
		WithContext("year", 2005)

	assert.Equal(t, "UK", err.Context["country"])
	assert.Equal(t, 2005, err.Context["year"])
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation_maps_to_400",
			err:        NewValidationError("bad options"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "not_found_maps_to_404",
			err:        NewNotFoundError("country"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "parsing_maps_to_422",
			err:        NewParsingError("bad CSV", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "PARSING",
		},
		{
			name:       "unknown_maps_to_500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "api_error_passes_through",
			err:        ErrRateLimitExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMIT_EXCEEDED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := toAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}
