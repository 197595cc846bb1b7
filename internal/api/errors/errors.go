package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindPaymentRequired    ErrorKind = "payment_required"
	KindForbidden          ErrorKind = "forbidden"
	KindConflict           ErrorKind = "conflict"
	KindPayloadTooLarge    ErrorKind = "payload_too_large"
	KindInternal           ErrorKind = "internal"
	KindUpstream           ErrorKind = "upstream"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
)

// Machine readable codes for the failures clients branch on
const (
	CodeInvalidFileType     = "invalid_file_type"
	CodeFileTooLarge        = "file_too_large"
	CodeInsufficientCredits = "insufficient_credits"
	CodeTranscriptionFailed = "transcription_failed"
	CodeDatabaseError       = "database_error"
	CodeStorageError        = "storage_error"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind              `json:"kind"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Code      string                 `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPaymentRequired:
		return http.StatusPaymentRequired
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		// upstream engine failures are reported as plain 500s
		return http.StatusInternalServerError
	}
}

// WithDetail adds a detail entry and returns e
func (e *APIError) WithDetail(key string, value interface{}) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	apiErr := &APIError{
		Kind:    KindValidation,
		Message: message,
	}
	for field, problem := range fields {
		apiErr.WithDetail(field, problem)
	}
	return apiErr
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *APIError {
	return &APIError{
		Kind:    KindForbidden,
		Message: message,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewDatabaseError creates an internal error for a failed store operation
func NewDatabaseError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
		Code:    CodeDatabaseError,
	}
}

// NewStorageError creates an internal error for a failed blob operation
func NewStorageError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
		Code:    CodeStorageError,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInvalidFileTypeError rejects a file whose MIME type is not audio
func NewInvalidFileTypeError(contentType string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: "Invalid file type. Please upload an audio file.",
		Code:    CodeInvalidFileType,
		Details: map[string]interface{}{"contentType": contentType},
	}
}

// NewFileTooLargeError rejects a file above the tier ceiling
func NewFileTooLargeError(maxSize, currentSize int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: "File size exceeds limit",
		Code:    CodeFileTooLarge,
		Details: map[string]interface{}{
			"maxSize":     maxSize,
			"currentSize": currentSize,
		},
	}
}

// NewInsufficientCreditsError reports a balance below the cost
func NewInsufficientCreditsError(needed, remaining int) *APIError {
	return &APIError{
		Kind:    KindPaymentRequired,
		Message: "Insufficient credits",
		Code:    CodeInsufficientCredits,
		Details: map[string]interface{}{
			"creditsNeeded":    needed,
			"creditsRemaining": remaining,
		},
	}
}

// NewTranscriptionFailedError reports an engine failure
func NewTranscriptionFailedError(cause string) *APIError {
	apiErr := &APIError{
		Kind:    KindUpstream,
		Message: "Transcription failed",
		Code:    CodeTranscriptionFailed,
	}
	if cause != "" {
		apiErr.WithDetail("error", cause)
	}
	return apiErr
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// WrapError wraps an existing error with API error context
func WrapError(err error, kind ErrorKind, message string) *APIError {
	if err == nil {
		return nil
	}

	apiErr := &APIError{
		Kind:    kind,
		Message: message,
	}

	// If the original error is already an APIError, preserve details
	if origAPIErr, ok := err.(*APIError); ok {
		if origAPIErr.Details != nil {
			apiErr.Details = origAPIErr.Details
		}
		if origAPIErr.Code != "" {
			apiErr.Code = origAPIErr.Code
		}
	}

	return apiErr
}
