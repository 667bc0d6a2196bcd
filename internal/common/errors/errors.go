// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Scope resolution
	ErrCodeScopeResolutionFailed ErrorCode = "SCOPE_RESOLUTION_FAILED"
	ErrCodeIntakeNotFound        ErrorCode = "INTAKE_NOT_FOUND"

	// Scoring conditions. CATALOG_EMPTY is a condition code only: an empty
	// catalog scores 0/INCOMPLETE instead of failing.
	ErrCodeCatalogEmpty       ErrorCode = "CATALOG_EMPTY"
	ErrCodeScoringUnavailable ErrorCode = "SCORING_UNAVAILABLE"

	// Storage collaborators
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeScopeCacheFailed         ErrorCode = "SCOPE_CACHE_FAILED"
	ErrCodeResultIndexFailed        ErrorCode = "RESULT_INDEX_FAILED"

	// Worker input
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
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

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// NewScopeResolutionFailedError creates a non-retryable resolution error.
// Scoring callers must degrade to unscoped scoring on this code.
func NewScopeResolutionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScopeResolutionFailed,
		Message:   "Scope could not be derived from intake answers",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntakeNotFoundError creates a non-retryable missing-intake error.
func NewIntakeNotFoundError(intakeFormID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntakeNotFound,
		Message:   "Intake form not found",
		Details:   fmt.Sprintf("intakeFormId: %s", intakeFormID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringUnavailableError wraps a collaborator I/O failure during a
// scoring run. Pure scoring functions never produce this; only the
// orchestrator's loads can.
func NewScoringUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringUnavailable,
		Message:   "Scoring data could not be loaded",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScopeCacheFailedError creates a retryable cache error.
func NewScopeCacheFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScopeCacheFailed,
		Message:   "Scope cache operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultIndexFailedError creates a retryable indexing error.
func NewResultIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultIndexFailed,
		Message:   "Scoring result could not be indexed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationFailedError creates a non-retryable payload error.
func NewInputValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Job input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeScoringUnavailable,
		ErrCodeResultIndexFailed:
		return 3

	case ErrCodeScopeCacheFailed:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError for the workflow engine.
// Internal and BPMN error codes are identical in this service.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SCOPE"):
		return "SCOPE"
	case strings.Contains(codeStr, "SCORING") || strings.Contains(codeStr, "CATALOG"):
		return "SCORING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INTAKE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
