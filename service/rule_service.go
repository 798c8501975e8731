// service/rule_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhiraj070/RuleMind/dao"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/util"
)

const bulkCheckConcurrency = 10

// IRuleService defines the interface for rule operations
type IRuleService interface {
	CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error)
	UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error)
	ToggleRule(ctx context.Context, ruleID string, enabled *bool) (*model.Rule, error)
	GetRule(ctx context.Context, ruleID string) (*model.Rule, error)
	ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error)
	BulkCreateRules(ctx context.Context, rules []model.Rule) ([]string, error)
	ListEnabledRules(ctx context.Context) ([]model.Rule, error)
}

// RuleCache caches the enabled-rule snapshot between evaluations.
type RuleCache interface {
	GetEnabledRules(ctx context.Context) ([]model.Rule, error)
	SetEnabledRules(ctx context.Context, rules []model.Rule) error
	InvalidateEnabledRules(ctx context.Context) error
}

type ruleChangeRecorder interface {
	RecordRuleChange(change string)
}

// RuleService handles business logic for rule operations
type RuleService struct {
	ruleDAO        dao.RuleStore
	validationUtil *util.ValidationUtil
	cache          RuleCache
	eventBus       *util.EventBus
	metrics        ruleChangeRecorder
	generation     atomic.Uint64
}

var _ IRuleService = &RuleService{}

func NewRuleService(ruleDAO dao.RuleStore, validationUtil *util.ValidationUtil, cache RuleCache, eventBus *util.EventBus, metrics ruleChangeRecorder) *RuleService {
	return &RuleService{
		ruleDAO:        ruleDAO,
		validationUtil: validationUtil,
		cache:          cache,
		eventBus:       eventBus,
		metrics:        metrics,
	}
}

func (s *RuleService) CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error) {
	if err := s.validationUtil.ValidateRule(rule); err != nil {
		logger.Warn("Invalid rule definition", zap.Error(err), zap.String("ruleID", rule.ID))
		return nil, err
	}

	created, err := s.ruleDAO.CreateRule(ctx, rule)
	if err != nil {
		logger.Error("Failed to create rule", zap.Error(err), zap.String("ruleID", rule.ID))
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	s.afterChange(ctx, util.EventRuleCreated, *created)
	logger.Info("Rule created", zap.String("ruleID", created.ID), zap.String("ruleName", created.Name))
	return created, nil
}

func (s *RuleService) UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error) {
	if err := s.validationUtil.ValidatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.ruleDAO.UpdateRule(ctx, ruleID, patch)
	if err != nil {
		logger.Error("Failed to update rule", zap.Error(err), zap.String("ruleID", ruleID))
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	s.afterChange(ctx, util.EventRuleUpdated, *updated)
	logger.Info("Rule updated", zap.String("ruleID", ruleID), zap.Int("version", updated.Version))
	return updated, nil
}

// ToggleRule sets the enabled flag, or flips it when enabled is nil.
func (s *RuleService) ToggleRule(ctx context.Context, ruleID string, enabled *bool) (*model.Rule, error) {
	var target bool
	if enabled != nil {
		target = *enabled
	} else {
		current, err := s.ruleDAO.GetRule(ctx, ruleID)
		if err != nil {
			return nil, fmt.Errorf("failed to toggle rule: %w", err)
		}
		target = !current.Enabled
	}

	toggled, err := s.ruleDAO.SetEnabled(ctx, ruleID, target)
	if err != nil {
		logger.Error("Failed to toggle rule", zap.Error(err), zap.String("ruleID", ruleID))
		return nil, fmt.Errorf("failed to toggle rule: %w", err)
	}

	s.afterChange(ctx, util.EventRuleToggled, *toggled)
	logger.Info("Rule toggled", zap.String("ruleID", ruleID), zap.Bool("enabled", toggled.Enabled))
	return toggled, nil
}

func (s *RuleService) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	rule, err := s.ruleDAO.GetRule(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, rm_errors.ErrRuleNotFound) {
			logger.Error("Failed to get rule", zap.Error(err), zap.String("ruleID", ruleID))
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

func (s *RuleService) ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, rm_errors.ErrInvalidPagination
	}
	opts.Query = strings.TrimSpace(opts.Query)
	rules, err := s.ruleDAO.ListRules(ctx, opts)
	if err != nil {
		logger.Error("Failed to list rules", zap.Error(err))
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// BulkCreateRules validates every rule and checks for id clashes in
// parallel, then creates the rules one by one in request order so creation
// order matches the request. Nothing is created if any check fails.
func (s *RuleService) BulkCreateRules(ctx context.Context, rules []model.Rule) ([]string, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules given", rm_errors.ErrValidation)
	}

	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		id := strings.TrimSpace(rule.ID)
		if id == "" {
			continue
		}
		if j, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: rules %d and %d share id %s", rm_errors.ErrRuleConflict, j+1, i+1, id)
		}
		seen[id] = i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkCheckConcurrency)
	for i, rule := range rules {
		g.Go(func() error {
			if err := s.validationUtil.ValidateRule(rule); err != nil {
				return fmt.Errorf("rule %d: %w", i+1, err)
			}
			if rule.ID == "" {
				return nil
			}
			_, err := s.ruleDAO.GetRule(gctx, strings.TrimSpace(rule.ID))
			switch {
			case err == nil:
				return fmt.Errorf("rule %d: %w: %s", i+1, rm_errors.ErrRuleConflict, rule.ID)
			case errors.Is(err, rm_errors.ErrRuleNotFound):
				return nil
			default:
				return fmt.Errorf("rule %d: %w", i+1, err)
			}
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("Bulk create rejected", zap.Error(err), zap.Int("count", len(rules)))
		return nil, fmt.Errorf("failed to bulk create rules: %w", err)
	}

	ruleIDs := make([]string, 0, len(rules))
	for _, rule := range rules {
		created, err := s.CreateRule(ctx, rule)
		if err != nil {
			logger.Error("Bulk create stopped", zap.Error(err), zap.Int("created", len(ruleIDs)))
			return ruleIDs, err
		}
		ruleIDs = append(ruleIDs, created.ID)
	}

	logger.Info("Bulk create rules completed", zap.Int("count", len(ruleIDs)))
	return ruleIDs, nil
}

// ListEnabledRules serves the evaluation snapshot, from the cache when it
// holds one. A snapshot read while a mutation was in flight is not cached.
func (s *RuleService) ListEnabledRules(ctx context.Context) ([]model.Rule, error) {
	cached, err := s.cache.GetEnabledRules(ctx)
	if err != nil {
		logger.Warn("Rule cache read failed, falling back to store", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	generation := s.generation.Load()
	rules, err := s.ruleDAO.ListEnabledRules(ctx)
	if err != nil {
		return nil, err
	}

	if s.generation.Load() != generation {
		return rules, nil
	}
	if err := s.cache.SetEnabledRules(ctx, rules); err != nil {
		logger.Warn("Failed to cache enabled rules", zap.Error(err))
		return rules, nil
	}
	// A mutation that landed between the check and the write has already
	// invalidated, so the entry just written may be stale.
	if s.generation.Load() != generation {
		if err := s.cache.InvalidateEnabledRules(ctx); err != nil {
			logger.Error("Failed to drop stale rule snapshot", zap.Error(err))
		}
	}
	return rules, nil
}

func (s *RuleService) afterChange(ctx context.Context, eventType string, rule model.Rule) {
	s.generation.Add(1)
	if err := s.cache.InvalidateEnabledRules(ctx); err != nil {
		logger.Error("Failed to invalidate rule cache", zap.Error(err), zap.String("ruleID", rule.ID))
	}
	if s.metrics != nil {
		s.metrics.RecordRuleChange(strings.TrimPrefix(eventType, "rule."))
	}
	s.eventBus.Publish(ctx, eventType, rule.Clone())
}
