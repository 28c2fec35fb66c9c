// Package errs defines the error kinds returned by the fcs decoder.
//
// Every error produced by the module wraps exactly one of the sentinel kinds below,
// so callers can branch with errors.Is regardless of the human-readable cause:
//
//	if errors.Is(err, errs.ErrUnsupportedFormat) {
//	    // file uses a layout this decoder does not implement
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a file uses a layout or variant the decoder
	// does not implement (deferred offsets, multi-dataset, non-list mode, ...).
	ErrUnsupportedFormat = errors.New("unsupported FCS format")
	// ErrMalformedHeader is returned when the fixed HEADER segment cannot be parsed.
	ErrMalformedHeader = errors.New("malformed HEADER segment")
	// ErrMalformedText is returned when the TEXT segment violates delimiter framing
	// or misses a required keyword.
	ErrMalformedText = errors.New("malformed TEXT segment")
	// ErrMalformedData is returned when metadata implies an invalid DATA layout.
	ErrMalformedData = errors.New("malformed DATA segment")
	// ErrTruncatedData is returned when the source is shorter than a segment it declares.
	ErrTruncatedData = errors.New("truncated FCS file")
	// ErrIO is returned when the byte source cannot be opened or read.
	ErrIO = errors.New("FCS I/O failure")
	// ErrNotImplemented is returned for features that are deliberately not provided,
	// such as compensation or ANALYSIS segment decoding.
	ErrNotImplemented = errors.New("not implemented")
)

// Unsupported returns an ErrUnsupportedFormat error describing the unsupported feature.
func Unsupported(format string, args ...any) error {
	return wrap(ErrUnsupportedFormat, format, args...)
}

// MalformedHeader returns an ErrMalformedHeader error with the given cause.
func MalformedHeader(format string, args ...any) error {
	return wrap(ErrMalformedHeader, format, args...)
}

// MalformedText returns an ErrMalformedText error with the given cause.
func MalformedText(format string, args ...any) error {
	return wrap(ErrMalformedText, format, args...)
}

// MalformedData returns an ErrMalformedData error with the given cause.
func MalformedData(format string, args ...any) error {
	return wrap(ErrMalformedData, format, args...)
}

// Truncated returns an ErrTruncatedData error with the given cause.
func Truncated(format string, args ...any) error {
	return wrap(ErrTruncatedData, format, args...)
}

// NotImplemented returns an ErrNotImplemented error naming the missing feature.
func NotImplemented(feature string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, feature)
}

// IO wraps an underlying I/O error so that it matches both ErrIO and err.
// It returns nil if err is nil.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
