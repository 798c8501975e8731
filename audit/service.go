// audit/service.go
package audit

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

const DefaultPageSize = 100

// Service is the audit sink. Record is synchronous; Query is lazy and
// restartable.
type Service interface {
	Record(ctx context.Context, entry model.AuditEntry) (string, error)
	Query(ctx context.Context, filter model.AuditFilter) iter.Seq2[model.AuditEntry, error]
	Get(ctx context.Context, id string) (*model.AuditEntry, error)
}

type service struct {
	repo         Repository
	writeTimeout time.Duration
	pageSize     int
}

// NewService wraps repo. A zero writeTimeout means writes only stop when
// the caller's context does.
func NewService(repo Repository, writeTimeout time.Duration, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &service{repo: repo, writeTimeout: writeTimeout, pageSize: pageSize}
}

func (s *service) Record(ctx context.Context, entry model.AuditEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.repo.Append(ctx, entry.Clone()); err != nil {
		logger.Error("Failed to record audit entry",
			zap.Error(err),
			zap.String("auditID", entry.ID),
			zap.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("%w: record audit entry: %w", rm_errors.ErrStorage, err)
	}

	logger.Debug("Audit entry recorded",
		zap.String("auditID", entry.ID),
		zap.String("transactionID", entry.TransactionID),
		zap.Duration("duration", time.Since(start)))
	return entry.ID, nil
}

// Query yields matching entries newest first, reading from the repository
// one page at a time. Ranging over the result again re-reads from storage.
// A storage failure is yielded once and ends the sequence.
func (s *service) Query(ctx context.Context, filter model.AuditFilter) iter.Seq2[model.AuditEntry, error] {
	return func(yield func(model.AuditEntry, error) bool) {
		var cursor *Cursor
		for {
			if err := ctx.Err(); err != nil {
				yield(model.AuditEntry{}, err)
				return
			}
			page, err := s.repo.Page(ctx, filter, cursor, s.pageSize)
			if err != nil {
				logger.Error("Failed to read audit page", zap.Error(err))
				yield(model.AuditEntry{}, fmt.Errorf("%w: query audit entries: %w", rm_errors.ErrStorage, err))
				return
			}
			for _, entry := range page {
				if !yield(entry, nil) {
					return
				}
			}
			if len(page) < s.pageSize {
				return
			}
			cursor = CursorOf(page[len(page)-1])
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*model.AuditEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, rm_errors.ErrAuditEntryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get audit entry: %w", rm_errors.ErrStorage, err)
	}
	return entry, nil
}
