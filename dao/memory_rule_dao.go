// dao/memory_rule_dao.go
package dao

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

// MemoryRuleDAO keeps rules in process memory. Readers get deep copies
// taken under a read lock, so an evaluation never sees a half-applied
// mutation.
type MemoryRuleDAO struct {
	mu    sync.RWMutex
	rules []model.Rule
	index map[string]int
	now   func() time.Time
}

func NewMemoryRuleDAO() *MemoryRuleDAO {
	return &MemoryRuleDAO{
		index: make(map[string]int),
		now:   nowUTC,
	}
}

func (dao *MemoryRuleDAO) ListEnabledRules(ctx context.Context) ([]model.Rule, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()

	rules := make([]model.Rule, 0, len(dao.rules))
	for _, rule := range dao.rules {
		if rule.Enabled {
			rules = append(rules, rule.Clone())
		}
	}
	return rules, nil
}

func (dao *MemoryRuleDAO) ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()

	var matched []model.Rule
	for _, rule := range dao.rules {
		if matchesQuery(rule, opts.Query) {
			matched = append(matched, rule)
		}
	}

	start, end := pageBounds(len(matched), opts.Limit, opts.Offset)
	rules := make([]model.Rule, 0, end-start)
	for _, rule := range matched[start:end] {
		rules = append(rules, rule.Clone())
	}
	return rules, nil
}

func (dao *MemoryRuleDAO) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()

	i, ok := dao.index[ruleID]
	if !ok {
		return nil, rm_errors.ErrRuleNotFound
	}
	rule := dao.rules[i].Clone()
	return &rule, nil
}

func (dao *MemoryRuleDAO) CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error) {
	prepared, err := prepareNewRule(rule, dao.now())
	if err != nil {
		return nil, err
	}

	dao.mu.Lock()
	defer dao.mu.Unlock()

	if _, exists := dao.index[prepared.ID]; exists {
		logger.Warn("Rule already exists", zap.String("ruleID", prepared.ID))
		return nil, rm_errors.ErrRuleConflict
	}
	dao.index[prepared.ID] = len(dao.rules)
	dao.rules = append(dao.rules, prepared)

	created := prepared.Clone()
	return &created, nil
}

func (dao *MemoryRuleDAO) UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	i, ok := dao.index[ruleID]
	if !ok {
		return nil, rm_errors.ErrRuleNotFound
	}
	updated, err := patchRule(dao.rules[i], patch, dao.now())
	if err != nil {
		return nil, err
	}
	dao.rules[i] = updated

	out := updated.Clone()
	return &out, nil
}

func (dao *MemoryRuleDAO) SetEnabled(ctx context.Context, ruleID string, enabled bool) (*model.Rule, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	i, ok := dao.index[ruleID]
	if !ok {
		return nil, rm_errors.ErrRuleNotFound
	}
	rule := dao.rules[i].Clone()
	rule.Enabled = enabled
	dao.rules[i] = touch(rule, dao.now())

	out := dao.rules[i].Clone()
	return &out, nil
}

func (dao *MemoryRuleDAO) CountRules(ctx context.Context) (int, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()
	return len(dao.rules), nil
}
