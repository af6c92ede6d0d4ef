package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrValidation      = "VALIDATION"       // malformed or missing declarative input
	ErrResolution      = "RESOLUTION"       // connection-settings references that can't be resolved
	ErrInvalidArgument = "INVALID_ARGUMENT" // structurally invalid input to an API
	ErrExec            = "EXEC"             // a remote command failed
	ErrSSH             = "SSH"              // the transport itself failed
)

// Sentinel causes. Wrapped inside *Error so callers can use errors.Is.
var (
	ErrUnknownGroup         = errors.New("unknown group")
	ErrInvalidGroup         = errors.New("invalid group")
	ErrRecursiveReference   = errors.New("recursive reference")
	ErrExcessiveIndirection = errors.New("excessive indirection")
	ErrUnknownReference     = errors.New("unknown reference")
	ErrInvalidPort          = errors.New("invalid port")
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var shkErr *Error
	if errors.As(err, &shkErr) {
		return shkErr.Code == code
	}
	return false
}

// IsLoadTime reports whether err belongs to the load-time taxonomy
// (validation, resolution, invalid argument). Those abort a run before
// any host is contacted.
func IsLoadTime(err error) bool {
	return IsCode(err, ErrValidation) || IsCode(err, ErrResolution) || IsCode(err, ErrInvalidArgument)
}

// CommandFailedError is returned when a command exits non-zero.
// Stderr has already had benign ssh warnings filtered out.
type CommandFailedError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Stderr)
}

// ExitError carries a process exit code up to main without printing anything extra.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
