// Package errors defines the failure categories of a jsonorder run and the
// messages shown for them on the terminal.
package errors

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by AppError values; match them with errors.Is.
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnsupportedType = errors.New("value is not a JSON type")
)

// ErrorType names the stage of a run that failed.
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
)

// AppError pairs a stage with a short description and the underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError of the same Type, so errors.Is(err,
// &AppError{Type: ErrorTypeOutput}) tests the stage alone.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type
}

func newError(typ ErrorType, message string, err error) *AppError {
	return &AppError{Type: typ, Message: message, Err: err}
}

// NewInputError reports a failure reading the input file or stdin.
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError reports input that is not exactly one JSON document.
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewConfigError reports an unreadable or invalid config file.
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewFormatError reports a value tree the formatter could not render.
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError reports a failure writing the result.
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

var stagePrefixes = map[ErrorType]string{
	ErrorTypeInput:   "Input error",
	ErrorTypeParsing: "JSON parsing error",
	ErrorTypeConfig:  "Configuration error",
	ErrorTypeFormat:  "JSON formatting error",
	ErrorTypeOutput:  "Output error",
}

var sentinelMessages = []struct {
	err     error
	message string
}{
	{ErrEmptyInput, "Error: The input is empty. Please provide a JSON document."},
	{ErrInvalidJSON, "Error: The input contains invalid JSON. Please check your JSON syntax."},
	{ErrMultipleJSON, "Error: Multiple JSON values found. Please provide a single JSON object or array."},
	{ErrFileNotFound, "Error: The specified file could not be found. Please check the file path."},
	{ErrFileEmpty, "Error: The specified file is empty. Please provide a file with valid JSON content."},
	{ErrInvalidFilePath, "Error: Invalid file path. Please provide a valid file path."},
}

// UserFriendlyError returns the one-line message printed when a run fails.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		prefix, ok := stagePrefixes[appErr.Type]
		if !ok {
			prefix = "Error"
		}
		return fmt.Sprintf("%s: %s", prefix, appErr.Message)
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.message
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
