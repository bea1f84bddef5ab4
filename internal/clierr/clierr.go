// Package clierr defines structured error types shared by the domain model,
// the storage layer, and the CLI. Errors carry a machine-readable code, a
// human-readable message, and optional details for JSON consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants, uppercase and underscore-separated.
const (
	InvalidInput     = "INVALID_INPUT"
	InvalidTitle     = "INVALID_TITLE"
	InvalidName      = "INVALID_NAME"
	InvalidStatus    = "INVALID_STATUS"
	InvalidPriority  = "INVALID_PRIORITY"
	InvalidColor     = "INVALID_COLOR"
	InvalidDate      = "INVALID_DATE"
	InvalidTag       = "INVALID_TAG"
	Required         = "REQUIRED"
	DuplicateTask    = "DUPLICATE_TASK"
	DuplicateProject = "DUPLICATE_PROJECT"
	TaskNotFound     = "TASK_NOT_FOUND"
	ProjectNotFound  = "PROJECT_NOT_FOUND"
	NameConflict     = "NAME_CONFLICT"
	ConfirmationReq  = "CONFIRMATION_REQUIRED"
	NoChanges        = "NO_CHANGES"
	InternalError    = "INTERNAL_ERROR"
)

// validationCodes are the codes raised at the point of assignment or insertion.
var validationCodes = map[string]bool{
	InvalidInput:     true,
	InvalidTitle:     true,
	InvalidName:      true,
	InvalidStatus:    true,
	InvalidPriority:  true,
	InvalidColor:     true,
	InvalidDate:      true,
	InvalidTag:       true,
	Required:         true,
	DuplicateTask:    true,
	DuplicateProject: true,
}

// Error represents a structured error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsValidation reports whether err belongs to the validation family:
// bad field values, missing required arguments, duplicate identities.
func IsValidation(err error) bool {
	return validationCodes[CodeOf(err)]
}

// SilentError signals an exit code without additional output.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
