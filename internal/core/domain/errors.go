package domain

import (
	"errors"
	"fmt"
)

// Decode errors. Typed errors below unwrap to these sentinels so callers
// can test the kind with errors.Is.
var (
	// ErrUnsupportedFormat indicates no decoder handles the media type.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformedDocument indicates the container opened but a mandatory
	// structural part is absent.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrIO indicates the input could not be read or the container could
	// not be opened at all.
	ErrIO = errors.New("document I/O error")

	// ErrCancelled indicates the decode was aborted by its context.
	ErrCancelled = errors.New("decode cancelled")

	// ErrInputTooLarge indicates the input exceeds the configured limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSetting indicates a configuration value failed validation.
	ErrInvalidSetting = errors.New("invalid setting")
)

// UnsupportedFormatError is returned when a decoder is asked to handle a
// media type outside its declared family, or no decoder is registered.
type UnsupportedFormatError struct {
	MediaType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.MediaType == "" {
		return "unsupported format: no media type"
	}
	return fmt.Sprintf("unsupported format: %s", e.MediaType)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// MalformedDocumentError is returned when the package opens but lacks a
// mandatory part such as the main document part or the body.
type MalformedDocumentError struct {
	Format string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed %s document: %s", e.Format, e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

// IOError is returned when the stream cannot be read or the container
// cannot be opened. It is never retried here.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// CancellationError is returned when the context ends mid-decode.
// Err is the context error.
type CancellationError struct {
	Err error
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("decode cancelled: %v", e.Err)
}

func (e *CancellationError) Unwrap() []error { return []error{ErrCancelled, e.Err} }

// Malformed builds a MalformedDocumentError.
func Malformed(format, reason string) error {
	return &MalformedDocumentError{Format: format, Reason: reason}
}

// IOFailure wraps err as an IOError for op.
func IOFailure(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

// Unsupported builds an UnsupportedFormatError.
func Unsupported(mediaType string) error {
	return &UnsupportedFormatError{MediaType: mediaType}
}

// Cancelled converts a context error into a CancellationError.
func Cancelled(err error) error {
	return &CancellationError{Err: err}
}
