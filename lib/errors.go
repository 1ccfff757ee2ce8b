package lib

import (
	"errors"
	"fmt"
)

// Process exit codes, one per error kind.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitEncoding   = 3
	ExitFilesystem = 4
)

// ValidationError reports a bad request parameter. It is always returned
// before the encoder or the filesystem are touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// EncodingError wraps a failure coming from a QR engine, e.g. data that does
// not fit a fixed version. The message is the engine's own.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// FilesystemError wraps directory creation and file write failures.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return e.Err.Error()
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Build to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		validationErr *ValidationError
		encodingErr   *EncodingError
		fsErr         *FilesystemError
	)

	switch {
	case errors.As(err, &validationErr):
		return ExitValidation
	case errors.As(err, &encodingErr):
		return ExitEncoding
	case errors.As(err, &fsErr):
		return ExitFilesystem
	}

	return ExitFailure
}
