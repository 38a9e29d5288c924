package common

import (
	"errors"
	"fmt"
)

// Error codes for the extraction pipeline. Every failure surfaced to a
// caller carries one of these.
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE" // fatal, not retryable
	CodeEmptyDocument       = "EMPTY_DOCUMENT"        // fatal, nothing to extract
	CodeNoStructuredData    = "NO_STRUCTURED_DATA"    // advisory, empty success
	CodeExternalService     = "EXTERNAL_SERVICE"      // vision service failure, caller may retry
	CodeMalformedSource     = "MALFORMED_SOURCE"      // byte stream could not be opened
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

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func UnsupportedFileTypeError(message string) *AppError {
	return NewAppError(CodeUnsupportedFileType, message, nil)
}

func EmptyDocumentError(message string) *AppError {
	return NewAppError(CodeEmptyDocument, message, nil)
}

func ExternalServiceError(message string, cause error) *AppError {
	return NewAppError(CodeExternalService, message, cause)
}

func MalformedSourceError(message string, cause error) *AppError {
	return NewAppError(CodeMalformedSource, message, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf extracts the pipeline error code from err, or "" if err does not
// wrap an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the human-readable message of err. For AppErrors that is
// the Message field alone; the raw cause stays in logs, not in user-visible
// envelopes.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
