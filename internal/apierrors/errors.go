package apierrors

import (
	"fmt"
	"net/http"

	"referral-server/internal/referral/validation"
)

// Machine-readable error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeReferralNotFound   = "REFERRAL_NOT_FOUND"
	CodeReferralRejected   = "REFERRAL_REJECTED"
	CodeInvalidAvatar      = "INVALID_AVATAR"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodePersistenceFailed  = "PERSISTENCE_FAILED"
	CodeStorageUploadFail  = "STORAGE_UPLOAD_FAILED"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// APIError is an error with everything needed to answer an HTTP request.
// Err holds the internal cause and is never sent to clients.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]validation.FieldError
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// BadRequest returns a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// ValidationFailed returns a 400 error listing every rejected field
func ValidationFailed(err *validation.ValidationError) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidationFailed,
		Message:    "Please correct the highlighted fields",
		Fields:     err.Fields,
		Err:        err,
	}
}

// NotFound returns a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// RequestEntityTooLarge returns a 413 error
func RequestEntityTooLarge(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusRequestEntityTooLarge, Code: code, Message: message}
}

// TooManyRequests returns a 429 error
func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimitExceeded, Message: message}
}

// ServiceUnavailable returns a 503 error that keeps the internal cause for logging
func ServiceUnavailable(code, message string, internalErr error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: internalErr}
}

// InternalError returns a sanitized 500 error - never exposes internal details
func InternalError(internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        internalErr,
	}
}
