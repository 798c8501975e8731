package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/audit"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/test/mock"
)

var auditEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func auditEntry(n int, status model.Verdict, ruleIDs ...string) model.AuditEntry {
	e := model.AuditEntry{
		ID: fmt.Sprintf("audit-%02d", n),
		EvaluationResult: model.EvaluationResult{
			TransactionID:  fmt.Sprintf("TXN-%02d", n),
			Status:         status,
			Message:        "all checks passed.",
			TriggeredRules: []model.TriggeredRule{},
			EvaluatedAt:    auditEpoch.Add(time.Duration(n) * time.Minute),
		},
	}
	for _, id := range ruleIDs {
		e.TriggeredRules = append(e.TriggeredRules, model.TriggeredRule{
			RuleID: id, Name: "Rule " + id, Severity: model.SeverityHigh, Action: model.ActionBlock,
		})
	}
	return e
}

func seededAuditSink(t *testing.T, entries ...model.AuditEntry) audit.Service {
	t.Helper()
	sink := audit.NewService(audit.NewMemoryRepository(), time.Second, 2)
	for _, e := range entries {
		_, err := sink.Record(context.Background(), e)
		require.NoError(t, err)
	}
	return sink
}

func TestAuditService_ListEntries(t *testing.T) {
	ctx := context.Background()
	var entries []model.AuditEntry
	for i := 1; i <= 5; i++ {
		entries = append(entries, auditEntry(i, model.VerdictPass))
	}
	svc := service.NewAuditService(seededAuditSink(t, entries...))

	t.Run("FirstPage", func(t *testing.T) {
		page, err := svc.ListEntries(ctx, model.AuditFilter{}, 2, 0)
		require.NoError(t, err)
		require.Len(t, page.Entries, 2)
		assert.Equal(t, "audit-05", page.Entries[0].ID)
		assert.Equal(t, "audit-04", page.Entries[1].ID)
		assert.True(t, page.HasMore)
	})

	t.Run("LastPage", func(t *testing.T) {
		page, err := svc.ListEntries(ctx, model.AuditFilter{}, 2, 4)
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, "audit-01", page.Entries[0].ID)
		assert.False(t, page.HasMore)
	})

	t.Run("ExactFit", func(t *testing.T) {
		page, err := svc.ListEntries(ctx, model.AuditFilter{}, 5, 0)
		require.NoError(t, err)
		assert.Len(t, page.Entries, 5)
		assert.False(t, page.HasMore)
	})

	t.Run("PastTheEnd", func(t *testing.T) {
		page, err := svc.ListEntries(ctx, model.AuditFilter{}, 2, 10)
		require.NoError(t, err)
		assert.NotNil(t, page.Entries)
		assert.Empty(t, page.Entries)
	})

	t.Run("Failure_Pagination", func(t *testing.T) {
		_, err := svc.ListEntries(ctx, model.AuditFilter{}, 0, 0)
		assert.ErrorIs(t, err, rm_errors.ErrInvalidPagination)
		_, err = svc.ListEntries(ctx, model.AuditFilter{}, 2, -1)
		assert.ErrorIs(t, err, rm_errors.ErrInvalidPagination)
	})

	t.Run("Failure_UnknownResult", func(t *testing.T) {
		_, err := svc.ListEntries(ctx, model.AuditFilter{Result: "blocked"}, 2, 0)
		assert.ErrorIs(t, err, rm_errors.ErrValidation)
	})
}

func TestAuditService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	sink := &mock.MockAuditService{}
	sink.On("Query", testifymock.Anything, model.AuditFilter{}).
		Return([]model.AuditEntry{auditEntry(1, model.VerdictPass)}, rm_errors.ErrStorage)
	sink.On("Get", testifymock.Anything, "audit-404").Return(nil, rm_errors.ErrAuditEntryNotFound)

	svc := service.NewAuditService(sink)

	_, err := svc.ListEntries(ctx, model.AuditFilter{}, 10, 0)
	assert.ErrorIs(t, err, rm_errors.ErrStorage)

	_, err = svc.GetEntry(ctx, "audit-404")
	assert.ErrorIs(t, err, rm_errors.ErrAuditEntryNotFound)

	sink.AssertExpectations(t)
}
