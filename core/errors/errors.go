// Package errors provides the typed error taxonomy for the scripture
// ingestion pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below wrap one of these so callers can use
// errors.Is without caring about the concrete type.
var (
	// ErrUnrecognizedMarkup indicates the classifier could not determine
	// whether an input was USX, USFM, or pre-parsed JSON.
	ErrUnrecognizedMarkup = errors.New("unrecognized markup")
	// ErrMissingBook indicates a USX/USFM document has no book code.
	ErrMissingBook = errors.New("missing book code")
	// ErrUnknownBook indicates a book code is not in the canon table.
	ErrUnknownBook = errors.New("unknown book")
	// ErrDuplicateBook indicates the same book code appeared twice in one translation.
	ErrDuplicateBook = errors.New("duplicate book")
	// ErrMissingMetadata indicates a required translation metadata field is absent.
	ErrMissingMetadata = errors.New("missing metadata")
	// ErrInvalidInput is a catch-all for malformed input that isn't any of the above.
	ErrInvalidInput = errors.New("invalid input")
)

// ParseError represents a malformed XML or USFM token sequence.
type ParseError struct {
	Detail   string // human-readable description of what went wrong
	Location string // best-effort location (line, element name, marker)
	Err      error  // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Location, e.Detail)
	}
	return fmt.Sprintf("parse error: %s", e.Detail)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// NewParseError creates a ParseError.
func NewParseError(detail, location string) *ParseError {
	return &ParseError{Detail: detail, Location: location}
}

// UnknownBookError indicates a book code not present in the canon table.
type UnknownBookError struct {
	Code string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book: %s", e.Code)
}

func (e *UnknownBookError) Unwrap() error { return ErrUnknownBook }

// DuplicateBookError indicates the same book appears twice in one translation.
type DuplicateBookError struct {
	Translation string
	Code        string
}

func (e *DuplicateBookError) Error() string {
	return fmt.Sprintf("translation %s: duplicate book %s", e.Translation, e.Code)
}

func (e *DuplicateBookError) Unwrap() error { return ErrDuplicateBook }

// MissingMetadataError indicates a required TranslationMetadata field is absent.
type MissingMetadataError struct {
	Field string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("missing required metadata field: %s", e.Field)
}

func (e *MissingMetadataError) Unwrap() error { return ErrMissingMetadata }

// MissingBookError indicates a USX/USFM document has no book code.
type MissingBookError struct {
	Location string
}

func (e *MissingBookError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("missing book code at %s", e.Location)
	}
	return "missing book code"
}

func (e *MissingBookError) Unwrap() error { return ErrMissingBook }

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool { return errors.Is(err, target) }

// As wraps errors.As for convenience.
func As(err error, target any) bool { return errors.As(err, target) }
