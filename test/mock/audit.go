// test/mock/audit.go
package mock

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/abhiraj070/RuleMind/model"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry model.AuditEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

// Query yields the entries passed to Return, then the error if one is set.
func (m *MockAuditService) Query(ctx context.Context, filter model.AuditFilter) iter.Seq2[model.AuditEntry, error] {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]model.AuditEntry)
	err := args.Error(1)
	return func(yield func(model.AuditEntry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
		if err != nil {
			yield(model.AuditEntry{}, err)
		}
	}
}

func (m *MockAuditService) Get(ctx context.Context, id string) (*model.AuditEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*model.AuditEntry)
	return entry, args.Error(1)
}
