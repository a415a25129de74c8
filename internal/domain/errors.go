package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or empty required input.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the caller does not own the target record.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrGenerationUnavailable indicates the text-generation service could not
	// produce a response (network failure, upstream 5xx, timeout).
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrExternalCatalogUnavailable indicates the external music catalog failed.
	// It is absorbed by the recommendation resolver and never reaches callers.
	ErrExternalCatalogUnavailable = errors.New("external catalog unavailable")

	// ErrInsufficientInput indicates nothing usable was supplied for style suggestions.
	ErrInsufficientInput = errors.New("insufficient input")

	// ErrSuggestionParse indicates a style-suggestion reply could not be parsed.
	ErrSuggestionParse = errors.New("style suggestion reply not parsable")

	// ErrPersistence indicates the storage layer failed.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports which input field was rejected.
// It matches ErrValidation via errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
