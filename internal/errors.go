package internal

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_FAILED"
	ErrorTypeRequest        ErrorType = "REQUEST_FAILED"
	ErrorTypeRetrieval      ErrorType = "RETRIEVAL_FAILED"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingUsername  ErrorCode = "MISSING_USERNAME"
	ErrCodeUsernameTooShort ErrorCode = "USERNAME_TOO_SHORT"
	ErrCodeMissingPassword  ErrorCode = "MISSING_PASSWORD"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeWrongPassword      ErrorCode = "WRONG_PASSWORD"
	ErrCodeWrongUsername      ErrorCode = "WRONG_USERNAME"
	ErrCodeLoginFailed        ErrorCode = "LOGIN_FAILED"

	ErrCodeRequestFailed   ErrorCode = "REQUEST_FAILED"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"

	ErrCodeFileURLUnavailable ErrorCode = "FILE_URL_UNAVAILABLE"
	ErrCodeRetrievalExhausted ErrorCode = "RETRIEVAL_EXHAUSTED"
)

// AppError is the single error shape that crosses package boundaries. For
// request failures StatusCode carries the HTTP status the backend answered
// with, and Message carries the server's textual body when it sent one.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
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

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithCode(code ErrorCode) *AppError {
	e.Code = code
	return e
}

// Is matches two AppErrors on their Type and Code so call sites can compare
// against the sentinel vars with errors.Is regardless of message or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewAuthenticationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthentication,
		Code:    code,
		Message: message,
	}
}

func NewRequestError(message string, statusCode int) *AppError {
	return &AppError{
		Type:       ErrorTypeRequest,
		Code:       ErrCodeRequestFailed,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewRetrievalError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeRetrieval,
		Code:    code,
		Message: message,
	}
}

var ErrRetrievalExhausted = NewRetrievalError("no se pudo abrir el recibo", ErrCodeRetrievalExhausted)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
