// errors/storage_errors.go
package errors

import "errors"

var (
	ErrStorage            = errors.New("storage unavailable")
	ErrAuditWrite         = errors.New("audit write failed")
	ErrAuditEntryNotFound = errors.New("audit entry not found")
	ErrInternalServer     = errors.New("internal server error")
	ErrRateLimited        = errors.New("rate limit exceeded")
)
