package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

// AllChecksPassed is the explanation reported when no rule triggers.
const AllChecksPassed = "all checks passed."

// RuleSource hands out the enabled rules in creation order. Each call must
// return a snapshot the caller owns.
type RuleSource interface {
	ListEnabledRules(ctx context.Context) ([]model.Rule, error)
}

// AuditRecorder durably records an evaluation and returns the entry id.
type AuditRecorder interface {
	Record(ctx context.Context, entry model.AuditEntry) (string, error)
}

// RuleEngine evaluates transactions against the enabled rules and records
// every evaluation before reporting it.
type RuleEngine struct {
	rules RuleSource
	audit AuditRecorder
	now   func() time.Time
	newID func() string
}

func NewRuleEngine(rules RuleSource, audit AuditRecorder) *RuleEngine {
	return &RuleEngine{
		rules: rules,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Evaluate runs one evaluation to completion. Evaluation faults abort the
// whole evaluation; a failed audit write discards the verdict.
func (e *RuleEngine) Evaluate(ctx context.Context, tx model.Transaction) (*model.AuditEntry, error) {
	snapshot, err := tx.Normalize()
	if err != nil {
		return nil, err
	}
	if snapshot.TransactionID == "" {
		snapshot.TransactionID = "TXN-" + strings.ToUpper(e.newID())
	}

	rules, err := e.rules.ListEnabledRules(ctx)
	if err != nil {
		logger.Error("Failed to load enabled rules", zap.Error(err), zap.String("transactionID", snapshot.TransactionID))
		return nil, fmt.Errorf("failed to load enabled rules: %w", err)
	}

	result, err := Decide(rules, snapshot)
	if err != nil {
		logger.Warn("Evaluation aborted",
			zap.Error(err),
			zap.String("transactionID", snapshot.TransactionID))
		return nil, err
	}
	result.EvaluatedAt = e.now()

	entry := model.AuditEntry{
		ID:               e.newID(),
		EvaluationResult: result,
		Transaction:      snapshot,
	}

	id, err := e.audit.Record(ctx, entry)
	if err != nil {
		logger.Error("Failed to record audit entry, discarding verdict",
			zap.Error(err),
			zap.String("transactionID", snapshot.TransactionID),
			zap.String("verdict", string(result.Status)))
		return nil, fmt.Errorf("%w: %w", rm_errors.ErrAuditWrite, err)
	}
	entry.ID = id

	logger.Info("Transaction evaluated",
		zap.String("transactionID", snapshot.TransactionID),
		zap.String("verdict", string(result.Status)),
		zap.Int("rulesEvaluated", len(rules)),
		zap.Int("rulesTriggered", len(result.TriggeredRules)),
		zap.String("auditID", id))

	return &entry, nil
}

// Decide evaluates rules in order against the snapshot and aggregates the
// verdict. It has no side effects.
func Decide(rules []model.Rule, snapshot model.TransactionSnapshot) (model.EvaluationResult, error) {
	result := model.EvaluationResult{
		TransactionID:  snapshot.TransactionID,
		TriggeredRules: []model.TriggeredRule{},
	}

	var triggered []model.Rule
	for _, rule := range rules {
		matched, err := matchRule(rule, snapshot)
		if err != nil {
			return model.EvaluationResult{}, err
		}
		if !matched {
			continue
		}
		triggered = append(triggered, rule)
		result.TriggeredRules = append(result.TriggeredRules, model.TriggeredRule{
			RuleID:   rule.ID,
			Name:     rule.Name,
			Severity: rule.Severity,
			Action:   rule.Action,
		})
	}

	result.Status = AggregateVerdict(result.TriggeredRules)
	result.Message = Explain(triggered)
	return result, nil
}

// matchRule reports whether every condition of the rule holds.
func matchRule(rule model.Rule, snapshot model.TransactionSnapshot) (bool, error) {
	if len(rule.Conditions) == 0 {
		return false, &rm_errors.EvaluationError{
			RuleID: rule.ID,
			Err:    fmt.Errorf("%w: rule has no conditions", rm_errors.ErrInvalidCondition),
		}
	}

	// Every condition is checked even after a miss so a broken condition
	// later in the rule is still reported.
	matched := true
	for _, condition := range rule.Conditions {
		ok, err := EvaluateCondition(condition, snapshot)
		if err != nil {
			return false, &rm_errors.EvaluationError{RuleID: rule.ID, Field: condition.Field, Err: err}
		}
		if !ok {
			matched = false
		}
	}
	return matched, nil
}

// AggregateVerdict derives the verdict from the triggered actions. Block
// dominates, so the verdict does not depend on evaluation order.
func AggregateVerdict(triggered []model.TriggeredRule) model.Verdict {
	verdict := model.VerdictPass
	for _, t := range triggered {
		switch t.Action {
		case model.ActionBlock:
			return model.VerdictFail
		default:
			verdict = model.VerdictWarning
		}
	}
	return verdict
}

// Explain joins the rationale of the most severe triggered rules.
func Explain(triggered []model.Rule) string {
	if len(triggered) == 0 {
		return AllChecksPassed
	}

	highest := 0
	for _, rule := range triggered {
		highest = max(highest, rule.Severity.Rank())
	}

	var parts []string
	for _, rule := range triggered {
		if rule.Severity.Rank() == highest {
			parts = append(parts, rule.Rationale())
		}
	}
	return strings.Join(parts, "; ")
}
