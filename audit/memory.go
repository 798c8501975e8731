// audit/memory.go
package audit

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
)

// MemoryRepository keeps the audit trail in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []model.AuditEntry
	ids     map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{ids: make(map[string]struct{})}
}

func (r *MemoryRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[entry.ID]; exists {
		return fmt.Errorf("audit entry %s already recorded", entry.ID)
	}
	r.ids[entry.ID] = struct{}{}
	r.entries = append(r.entries, entry.Clone())
	return nil
}

func (r *MemoryRepository) Page(ctx context.Context, filter model.AuditFilter, after *Cursor, limit int) ([]model.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var matched []model.AuditEntry
	for _, entry := range r.entries {
		if filter.Matches(entry) && after.Before(entry) {
			matched = append(matched, entry)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b model.AuditEntry) int {
		if c := b.EvaluatedAt.Compare(a.EvaluatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	page := make([]model.AuditEntry, 0, len(matched))
	for _, entry := range matched {
		page = append(page, entry.Clone())
	}
	return page, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*model.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.ID == id {
			out := entry.Clone()
			return &out, nil
		}
	}
	return nil, rm_errors.ErrAuditEntryNotFound
}
