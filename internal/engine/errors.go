package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a terminal failure of a search operation.
//
// Runtime errors include:
//   - Invariant violation: a line that shares a covered pair reached AddLine
//   - Oracle failure: the canonical-form or exact-cover oracle failed
//   - Quota exceeded: the operation ran past its step limit
//
// None of these are retried. The oracles are deterministic, so a failure
// means the input was built wrong.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Phase is the search operation that failed.
	Phase Phase

	// NumPoints is the design size being searched.
	NumPoints int

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvariantViolation indicates an AddLine broke the linear-space
	// axiom. This is a defect in candidate construction.
	ErrCodeInvariantViolation RuntimeErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeOracleFailure indicates an oracle returned an error.
	ErrCodeOracleFailure RuntimeErrorCode = "ORACLE_FAILURE"

	// ErrCodeQuotaExceeded indicates the step limit was hit.
	ErrCodeQuotaExceeded RuntimeErrorCode = "QUOTA_EXCEEDED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s (phase=%s, n=%d)", e.Code, e.Message, e.Phase, e.NumPoints)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error { return e.Err }

// IsInvariantError returns true if err is an invariant violation.
// Uses errors.As to handle wrapped errors.
func IsInvariantError(err error) bool {
	return hasCode(err, ErrCodeInvariantViolation)
}

// IsOracleError returns true if err is an oracle failure.
func IsOracleError(err error) bool {
	return hasCode(err, ErrCodeOracleFailure)
}

// IsQuotaError returns true if err is a quota exceeded error.
// Matches both RuntimeError with ErrCodeQuotaExceeded and StepsExceededError.
func IsQuotaError(err error) bool {
	if hasCode(err, ErrCodeQuotaExceeded) {
		return true
	}
	var se *StepsExceededError
	return errors.As(err, &se)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewInvariantError wraps a design.InvariantError raised during phase.
func NewInvariantError(phase Phase, numPoints int, err error) *RuntimeError {
	return &RuntimeError{
		Code:      ErrCodeInvariantViolation,
		Message:   "candidate line shares a covered pair",
		Phase:     phase,
		NumPoints: numPoints,
		Err:       err,
	}
}

// NewOracleError wraps an oracle failure. oracle is "canon" or "cover".
func NewOracleError(phase Phase, numPoints int, oracle string, err error) *RuntimeError {
	return &RuntimeError{
		Code:      ErrCodeOracleFailure,
		Message:   oracle + " oracle failed",
		Phase:     phase,
		NumPoints: numPoints,
		Details:   map[string]string{"oracle": oracle},
		Err:       err,
	}
}

// NewQuotaError wraps a StepsExceededError.
func NewQuotaError(phase Phase, numPoints int, se *StepsExceededError) *RuntimeError {
	return &RuntimeError{
		Code:      ErrCodeQuotaExceeded,
		Message:   fmt.Sprintf("search exceeded max steps (%d > %d)", se.Steps, se.Limit),
		Phase:     phase,
		NumPoints: numPoints,
		Details: map[string]string{
			"steps":     fmt.Sprintf("%d", se.Steps),
			"max_steps": fmt.Sprintf("%d", se.Limit),
		},
		Err: se,
	}
}
