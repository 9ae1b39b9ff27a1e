// Package errors defines the failure kinds surfaced by the encryption core.
//
// Every error returned by the core matches one of the sentinels below with
// errors.Is. KeySizeError and IOError carry extra context and unwrap to
// their sentinel.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlgorithm is returned for an algorithm outside AES, DES and TripleDES.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrUnsupportedMode is returned for a mode outside CBC and ECB.
	ErrUnsupportedMode = errors.New("unsupported mode")
	// ErrKeySizeMismatch is returned when key material has the wrong length for the cipher.
	ErrKeySizeMismatch = errors.New("key size mismatch")
	// ErrUnexpectedEndOfStream is returned when a container ends before a complete header or block.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")
	// ErrInvalidPadding is returned when the final decrypted block carries malformed PKCS#7 padding.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrIO is returned when the underlying file or stream fails.
	ErrIO = errors.New("i/o failure")

	// ErrInvalidInput groups malformed caller arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyPassword is returned when a password is required but empty.
	ErrEmptyPassword = Wrap(ErrInvalidInput, "empty password")
	// ErrInvalidIterations is returned for a PBKDF2 iteration count below one.
	ErrInvalidIterations = Wrap(ErrInvalidInput, "iterations must be at least 1")
	// ErrInvalidIV is returned when the IV length differs from the cipher block size.
	ErrInvalidIV = Wrap(ErrInvalidInput, "invalid IV length")
)

// KeySizeError reports the expected and actual key lengths in bytes.
type KeySizeError struct {
	Expected int
	Actual   int
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("%v: expected %d bytes, got %d", ErrKeySizeMismatch, e.Expected, e.Actual)
}

// Unwrap allows errors.Is(err, ErrKeySizeMismatch).
func (e *KeySizeError) Unwrap() error {
	return ErrKeySizeMismatch
}

// NewKeySizeError returns a *KeySizeError.
func NewKeySizeError(expected, actual int) error {
	return &KeySizeError{Expected: expected, Actual: actual}
}

// IOError wraps a failure of the underlying file or stream.
type IOError struct {
	Op   string // "open", "read", "write", "close", ...
	Path string // empty for anonymous streams
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %s %q: %v", ErrIO, e.Op, e.Path, e.Err)
	}

	return fmt.Sprintf("%v: %s: %v", ErrIO, e.Op, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewIOError wraps err as an *IOError. A nil err yields nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	return &IOError{Op: op, Path: path, Err: err}
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
