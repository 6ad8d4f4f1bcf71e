package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrUnsupportedFormat means the filename extension was not recognized.
	// The pipeline is never invoked for these.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyDocument means direct text extraction produced nothing, which
	// for PDFs usually indicates a scanned document with no text layer.
	ErrEmptyDocument = errors.New("empty or image-only document")

	// ErrExtraction wraps any underlying parse or read failure.
	ErrExtraction = errors.New("extraction failed")

	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
