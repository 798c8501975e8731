// audit/repository.go
package audit

import (
	"context"

	"github.com/abhiraj070/RuleMind/model"
)

// Repository is the durable, append-only storage behind the audit trail.
type Repository interface {
	// Append stores entry. It either stores the whole entry or nothing.
	Append(ctx context.Context, entry model.AuditEntry) error
	// Page returns up to limit entries matching filter that sort after the
	// cursor, newest first. A nil cursor starts from the newest entry.
	Page(ctx context.Context, filter model.AuditFilter, after *Cursor, limit int) ([]model.AuditEntry, error)
	Get(ctx context.Context, id string) (*model.AuditEntry, error)
}
