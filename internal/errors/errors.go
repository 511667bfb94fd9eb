package errors

import (
	"errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
	// Status is the HTTP status returned by the remote service, 0 if none
	Status int
	// Detail is the best-effort error body returned by the remote service
	Detail string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Service builds a SERVICE_ERROR for a failed remote call
func Service(status int, detail string, cause error) *AppError {
	message := "translation service unavailable"
	if status != 0 {
		message = fmt.Sprintf("translation failed with status %d", status)
	}
	return &AppError{
		Code:    CodeService,
		Message: message,
		Cause:   cause,
		Status:  status,
		Detail:  detail,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}

// StatusOf returns the remote HTTP status carried by err, or 0
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// UserMessage turns err into a message suitable for end users
func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "Something went wrong. Please try again."
	}
	switch appErr.Code {
	case CodeInvalidArg:
		return appErr.Message
	case CodeService:
		return "Translation failed. Please try again."
	case CodeMalformedResponse, CodeEmptyResult:
		return "Translation failed. The model did not return a usable answer."
	default:
		return "Something went wrong. Please try again."
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeConflict   = "CONFLICT" // Resource already exists (UNIQUE violation)

	CodeService           = "SERVICE_ERROR"      // Non-2xx or unreachable completion service
	CodeMalformedResponse = "MALFORMED_RESPONSE" // 2xx body without choices[0].message.content
	CodeEmptyResult       = "EMPTY_RESULT"       // Model answered with blank text
)
