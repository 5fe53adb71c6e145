package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDataSource    = "DATA_SOURCE_ERROR"
	CodeFilterState   = "FILTER_STATE_ERROR"
	CodeExport        = "EXPORT_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DataSource marks failures reading the source workbook: missing file,
// missing sheet, or a header row that breaks the column contract.
func DataSource(message string, cause error) *AppError {
	return &AppError{Code: CodeDataSource, Message: message, Cause: cause}
}

// FilterState marks malformed filter input. Always recoverable: callers
// clamp or reject the interaction, never crash.
func FilterState(message string) *AppError {
	return New(CodeFilterState, message)
}

// Export marks an I/O failure while writing an export stream.
func Export(message string, cause error) *AppError {
	return &AppError{Code: CodeExport, Message: message, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// IsCode reports whether err carries the given application error code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}
