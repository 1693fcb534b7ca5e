// Package errors provides standardized error handling for the matching core.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProviderError      ErrorCode = "PROVIDER_ERROR"
	ErrCodeProviderTimeout    ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeVectorDimMismatch  ErrorCode = "VECTOR_DIMENSION_MISMATCH"
	ErrCodeVectorStoreFailed  ErrorCode = "VECTOR_STORE_FAILED"
	ErrCodeQueryFailed        ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeProjectNotFound    ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeShortlistFailed    ErrorCode = "SHORTLIST_FAILED"
	ErrCodeSubscriptionFailed ErrorCode = "SUBSCRIPTION_CHECK_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is allows errors.Is matching against another StandardError by code.
func (e *StandardError) Is(target error) bool {
	if se, ok := target.(*StandardError); ok {
		return se.Code == e.Code
	}
	return false
}

// NewProviderError creates a retryable embedding/AI provider error.
// Callers treat it as "no vector available" and fall back to rule-based scoring.
func NewProviderError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   fmt.Sprintf("Embedding provider '%s' error", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError(provider string, timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("Embedding provider '%s' timeout", provider),
		Details:   fmt.Sprintf("call exceeded %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid search parameters",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVectorDimMismatchError creates a non-retryable vector length mismatch error.
// Caught at the comparison site and treated as "candidate has no usable vector".
func NewVectorDimMismatchError(want, got int) *StandardError {
	return &StandardError{
		Code:      ErrCodeVectorDimMismatch,
		Message:   "Embedding dimension mismatch",
		Details:   fmt.Sprintf("want %d, got %d", want, got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVectorStoreError creates a retryable vector store error.
func NewVectorStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVectorStoreFailed,
		Message:   "Vector store operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionError creates a retryable candidate query error.
func NewQueryExecutionError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryFailed,
		Message:   "Candidate query execution error",
		Details:   fmt.Sprintf("stage: %s, error: %s", stage, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProjectNotFoundError creates a non-retryable missing project error.
func NewProjectNotFoundError(projectID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectNotFound,
		Message:   "Project not found",
		Details:   fmt.Sprintf("projectId: %s", projectID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewShortlistFailedError creates a retryable shortlist generation error.
func NewShortlistFailedError(projectID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeShortlistFailed,
		Message:   "Shortlist generation failed",
		Details:   fmt.Sprintf("projectId: %s, error: %s", projectID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubscriptionCheckFailedError creates a retryable subscription lookup error.
func NewSubscriptionCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubscriptionFailed,
		Message:   "Database error during subscription check",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf returns the ErrorCode of err, or empty when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}
