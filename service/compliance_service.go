// service/compliance_service.go
package service

import (
	"context"
	"time"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/pdp/engine"
	"github.com/abhiraj070/RuleMind/util"
)

// IComplianceService evaluates transactions against the enabled rules.
type IComplianceService interface {
	Evaluate(ctx context.Context, tx model.Transaction) (*model.AuditEntry, error)
}

type evaluationRecorder interface {
	RecordEvaluation(duration time.Duration, result model.EvaluationResult)
	RecordEvaluationError(duration time.Duration, code string)
}

type ComplianceService struct {
	engine   *engine.RuleEngine
	eventBus *util.EventBus
	metrics  evaluationRecorder
}

var _ IComplianceService = &ComplianceService{}

func NewComplianceService(ruleEngine *engine.RuleEngine, eventBus *util.EventBus, metrics evaluationRecorder) *ComplianceService {
	return &ComplianceService{engine: ruleEngine, eventBus: eventBus, metrics: metrics}
}

func (s *ComplianceService) Evaluate(ctx context.Context, tx model.Transaction) (*model.AuditEntry, error) {
	start := time.Now()
	entry, err := s.engine.Evaluate(ctx, tx)
	if err != nil {
		if s.metrics != nil {
			code, _ := rm_errors.Code(err)
			s.metrics.RecordEvaluationError(time.Since(start), code)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordEvaluation(time.Since(start), entry.EvaluationResult)
	}
	if entry.Status == model.VerdictFail {
		s.eventBus.Publish(ctx, util.EventTransactionBlocked, entry.Clone())
	}
	return entry, nil
}
