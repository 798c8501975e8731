// errors/rule_errors.go
package errors

import "errors"

var (
	ErrRuleNotFound      = errors.New("rule not found")
	ErrRuleConflict      = errors.New("rule conflict")
	ErrValidation        = errors.New("invalid rule definition")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
