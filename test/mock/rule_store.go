// test/mock/rule_store.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/abhiraj070/RuleMind/model"
)

// MockRuleStore is a mock implementation of dao.RuleStore
type MockRuleStore struct {
	mock.Mock
}

func (m *MockRuleStore) ListEnabledRules(ctx context.Context) ([]model.Rule, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).([]model.Rule)
	return rules, args.Error(1)
}

func (m *MockRuleStore) ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	args := m.Called(ctx, opts)
	rules, _ := args.Get(0).([]model.Rule)
	return rules, args.Error(1)
}

func (m *MockRuleStore) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	args := m.Called(ctx, ruleID)
	rule, _ := args.Get(0).(*model.Rule)
	return rule, args.Error(1)
}

func (m *MockRuleStore) CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error) {
	args := m.Called(ctx, rule)
	created, _ := args.Get(0).(*model.Rule)
	return created, args.Error(1)
}

func (m *MockRuleStore) UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error) {
	args := m.Called(ctx, ruleID, patch)
	rule, _ := args.Get(0).(*model.Rule)
	return rule, args.Error(1)
}

func (m *MockRuleStore) SetEnabled(ctx context.Context, ruleID string, enabled bool) (*model.Rule, error) {
	args := m.Called(ctx, ruleID, enabled)
	rule, _ := args.Get(0).(*model.Rule)
	return rule, args.Error(1)
}

func (m *MockRuleStore) CountRules(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
