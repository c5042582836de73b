package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewStorageError("failed to open dataset", errors.New("no such file")),
			want: "[STORAGE] failed to open dataset: no such file",
		},
		{
			name: "without cause",
			err:  NewAppValidationError("min amount must be non-negative"),
			want: "[VALIDATION] min amount must be non-negative",
		},
		{
			name: "not found",
			err:  NewNotFoundError("dataset"),
			want: "[NOT_FOUND] dataset not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParsingError("bad row", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	wrapped := fmt.Errorf("loading: %w", err)
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewStorageError("write failed", nil).WithContext("path", "/tmp/out.csv")
	assert.Equal(t, "/tmp/out.csv", err.Context["path"])
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation app error",
			err:        NewAppValidationError("bad input"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "not found app error",
			err:        NewNotFoundError("dataset"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("bad row", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "PARSING_FAILED",
		},
		{
			name:       "storage app error",
			err:        NewStorageError("disk gone", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "passthrough api error",
			err:        ErrDatasetNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "DATASET_NOT_FOUND",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("outer: %w", NewNotFoundError("country")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrValidation("min_amount", "must be non-negative"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "min_amount")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
