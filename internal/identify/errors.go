package identify

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Domain errors for identify operations.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidImage     = errors.New("image could not be decoded")
	ErrUnsupportedImage = errors.New("image must be jpg, jpeg or png")
	ErrImageTooLarge    = errors.New("image exceeds upload limit")
)

// ValidationError reports every field the collector rejected.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.fields[k]
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Fields returns a copy of the per-field messages.
func (e *ValidationError) Fields() map[string]string {
	return maps.Clone(e.fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MapHTTPStatus maps identify domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrImageTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
