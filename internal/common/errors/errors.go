// Package errors provides standardized error types for the recommendation engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrCodeNoEligibleCandidates ErrorCode = "NO_ELIGIBLE_CANDIDATES"
	ErrCodeScoringFailed        ErrorCode = "SCORING_FAILED"

	ErrCodeCandidateQueryFailed   ErrorCode = "CANDIDATE_QUERY_FAILED"
	ErrCodeTransactionQueryFailed ErrorCode = "TRANSACTION_QUERY_FAILED"
	ErrCodeStationQueryFailed     ErrorCode = "STATION_QUERY_FAILED"
	ErrCodeResultSaveFailed       ErrorCode = "RESULT_SAVE_FAILED"
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

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Recommendation request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoEligibleCandidatesError creates a non-retryable "no matches" outcome.
// The details carry guidance the caller can surface to the user.
func NewNoEligibleCandidatesError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoEligibleCandidates,
		Message:   "No apartments match the requested budget and area",
		Details:   "Relax the budget ceiling or the minimum area and try again",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringFailedError signals that every candidate in the pool failed scoring.
func NewScoringFailedError(candidateCount int) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "Scoring failed for every candidate in the pool",
		Details:   fmt.Sprintf("candidates: %d", candidateCount),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateQueryFailedError creates a retryable candidate pool query error.
func NewCandidateQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateQueryFailed,
		Message:   "Candidate pool query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultSaveFailedError creates a retryable result sink error.
func NewResultSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultSaveFailed,
		Message:   "Failed to persist recommendation results",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// HasCode reports whether err is (or wraps) a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
