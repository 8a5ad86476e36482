package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a collection that is not configured.
	ErrNotFound = errors.New("not found")
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidRecord signals a malformed record or record ID.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidCollection signals an invalid collection definition.
	ErrInvalidCollection = errors.New("invalid collection")
	// ErrExtractionFailed signals a keyword extractor failure.
	ErrExtractionFailed = errors.New("keyword extraction failed")
	// ErrTextSearchNotSupported signals that the backend lacks full-text search.
	ErrTextSearchNotSupported = errors.New("text search not supported by backend")
)

// ExtractionError reports an extractor failure for a single source field.
// Unwrap returns the extractor's own error; errors.Is(err, ErrExtractionFailed) also holds.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", ErrExtractionFailed.Error(), e.Err)
	}
	return fmt.Sprintf("%s: field %q: %v", ErrExtractionFailed.Error(), e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports ErrExtractionFailed as a match.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtractionFailed }

// NewExtractionError wraps err as a failure to extract keywords from field.
func NewExtractionError(field string, err error) error {
	return &ExtractionError{Field: field, Err: err}
}
