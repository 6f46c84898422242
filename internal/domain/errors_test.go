package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"typed not found", NewNotFound("folder", "x"), http.StatusNotFound},
		{"wrapped sentinel not found", fmt.Errorf("room r: %w", ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("room r: %w", NewForbidden("data room", "r")), http.StatusForbidden},
		{"conflict", &ConflictError{ResourceType: "folder"}, http.StatusConflict},
		{"too large", NewValidation(ErrFileTooLarge, ""), http.StatusRequestEntityTooLarge},
		{"unsupported", NewValidation(ErrUnsupportedFileType, ""), http.StatusUnsupportedMediaType},
		{"invalid name", NewValidation(ErrInvalidName, "bad"), http.StatusBadRequest},
		{"bare parent not found", fmt.Errorf("folder f: %w", ErrParentNotFound), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: no user", ErrUnauthorized), http.StatusUnauthorized},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidation(ErrCycleDetected, "cycle"))
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrInvalidName)

	conflict := &ConflictError{Message: "dup", ResourceType: "file", ResourceID: "f1"}
	assert.ErrorIs(t, conflict, ErrDuplicateName)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "A folder with this name already exists in this location",
		UserMessage(&ConflictError{ResourceType: "folder"}))
	assert.Equal(t, "A file with this name already exists in this location",
		UserMessage(&ConflictError{ResourceType: "file"}))
	assert.Equal(t, "Only PDF files are allowed", UserMessage(NewValidation(ErrUnsupportedFileType, "x")))
	assert.Equal(t, "At least one search type must be selected", UserMessage(NewValidation(ErrNoSearchScopeSelected, "")))
	assert.Equal(t, "Something went wrong, please retry", UserMessage(errors.New("pgx: timeout")))
	assert.Equal(t, "validation failed: no folder fields to update",
		UserMessage(fmt.Errorf("%w: no folder fields to update", ErrValidation)))
}
