package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatUndetected means no registered signature matched the first page.
	ErrFormatUndetected = errors.New("could not detect bank type")
	// ErrUnknownFormat means an explicitly requested format id is not registered.
	ErrUnknownFormat = errors.New("unknown bank format")
	// ErrEmptyStatement means extraction ran cleanly but produced no rows.
	ErrEmptyStatement = errors.New("no transactions detected")

	errNoExtractor = errors.New("no extractor for format")
)

// ExtractionError wraps an unexpected failure while scanning a document.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
