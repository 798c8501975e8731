// service/audit_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhiraj070/RuleMind/audit"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

// IAuditService serves the audit trail to API clients.
type IAuditService interface {
	ListEntries(ctx context.Context, filter model.AuditFilter, limit, offset int) (*model.AuditPage, error)
	GetEntry(ctx context.Context, id string) (*model.AuditEntry, error)
}

type AuditService struct {
	sink audit.Service
}

var _ IAuditService = &AuditService{}

func NewAuditService(sink audit.Service) *AuditService {
	return &AuditService{sink: sink}
}

// ListEntries returns one page of the newest-first audit query. It reads one
// entry past the page to tell whether more exist.
func (s *AuditService) ListEntries(ctx context.Context, filter model.AuditFilter, limit, offset int) (*model.AuditPage, error) {
	if limit <= 0 || offset < 0 {
		return nil, rm_errors.ErrInvalidPagination
	}
	if filter.Result != "" && !filter.Result.Valid() {
		return nil, fmt.Errorf("%w: unknown result %q", rm_errors.ErrValidation, filter.Result)
	}

	page := &model.AuditPage{Entries: []model.AuditEntry{}, Limit: limit, Offset: offset}
	skipped := 0
	for entry, err := range s.sink.Query(ctx, filter) {
		if err != nil {
			logger.Error("Failed to query audit trail", zap.Error(err))
			return nil, err
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(page.Entries) == limit {
			page.HasMore = true
			break
		}
		page.Entries = append(page.Entries, entry)
	}
	return page, nil
}

func (s *AuditService) GetEntry(ctx context.Context, id string) (*model.AuditEntry, error) {
	return s.sink.Get(ctx, id)
}
