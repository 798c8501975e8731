// errors/evaluation_errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCondition = errors.New("invalid condition")
	ErrMalformedInput   = errors.New("malformed input")
	ErrEvaluation       = errors.New("evaluation failed")
)

// MalformedInputError reports a transaction field that could not be normalized.
type MalformedInputError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: field %q value %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed input: field %q value %q", e.Field, e.Value)
}

func (e *MalformedInputError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedInput, e.Err}
	}
	return []error{ErrMalformedInput}
}

// EvaluationError aborts an evaluation and names the rule and field that caused it.
type EvaluationError struct {
	RuleID string
	Field  string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed at rule %s (field %q): %v", e.RuleID, e.Field, e.Err)
}

func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}
