// errors/codes.go
package errors

import (
	"errors"
	"net/http"
)

// Error codes returned to API clients.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidCondition = "INVALID_CONDITION"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeEvaluation       = "EVALUATION_ERROR"
	CodeAuditWrite       = "AUDIT_WRITE_ERROR"
	CodeStorage          = "STORAGE_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Code maps an error onto its API code and HTTP status. Order matters: an
// audit write failure also wraps the storage error that caused it, and an
// evaluation error wraps the evaluator fault it aborted on.
func Code(err error) (string, int) {
	switch {
	case err == nil:
		return "", http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidPagination):
		return CodeValidation, http.StatusBadRequest
	case errors.Is(err, ErrRuleNotFound), errors.Is(err, ErrAuditEntryNotFound):
		return CodeNotFound, http.StatusNotFound
	case errors.Is(err, ErrRuleConflict):
		return CodeConflict, http.StatusConflict
	case errors.Is(err, ErrEvaluation):
		return CodeEvaluation, http.StatusUnprocessableEntity
	case errors.Is(err, ErrMalformedInput):
		return CodeMalformedInput, http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidCondition):
		return CodeInvalidCondition, http.StatusUnprocessableEntity
	case errors.Is(err, ErrAuditWrite):
		return CodeAuditWrite, http.StatusServiceUnavailable
	case errors.Is(err, ErrStorage):
		return CodeStorage, http.StatusServiceUnavailable
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited, http.StatusTooManyRequests
	default:
		return CodeInternal, http.StatusInternalServerError
	}
}
