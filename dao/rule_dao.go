// dao/rule_dao.go
package dao

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/util"
)

// RuleStore persists compliance rules. Rules come back in creation order
// and every returned value is a copy the caller owns.
type RuleStore interface {
	ListEnabledRules(ctx context.Context) ([]model.Rule, error)
	ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error)
	GetRule(ctx context.Context, ruleID string) (*model.Rule, error)
	CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error)
	UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error)
	SetEnabled(ctx context.Context, ruleID string, enabled bool) (*model.Rule, error)
	CountRules(ctx context.Context) (int, error)
}

var validation = util.NewValidationUtil()

// prepareNewRule validates rule and stamps the fields the store owns.
func prepareNewRule(rule model.Rule, now time.Time) (model.Rule, error) {
	rule = rule.Clone()
	rule.ID = strings.TrimSpace(rule.ID)
	if err := validation.ValidateRule(rule); err != nil {
		return model.Rule{}, err
	}
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.Version = 1
	rule.CreatedAt = now
	rule.UpdatedAt = now
	return rule, nil
}

// patchRule applies patch to current and validates the result.
func patchRule(current model.Rule, patch model.RulePatch, now time.Time) (model.Rule, error) {
	if err := validation.ValidatePatch(patch); err != nil {
		return model.Rule{}, err
	}
	updated := patch.Apply(current)
	if err := validation.ValidateRule(updated); err != nil {
		return model.Rule{}, err
	}
	return touch(updated, now), nil
}

func touch(rule model.Rule, now time.Time) model.Rule {
	rule.Version++
	if !now.After(rule.UpdatedAt) {
		now = rule.UpdatedAt.Add(time.Nanosecond)
	}
	rule.UpdatedAt = now
	return rule
}

// matchesQuery is the case-insensitive search over id, name and source.
func matchesQuery(rule model.Rule, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(rule.ID), query) ||
		strings.Contains(strings.ToLower(rule.Name), query) ||
		strings.Contains(strings.ToLower(rule.Source), query)
}

func pageBounds(total, limit, offset int) (int, int) {
	if offset >= total {
		return total, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return offset, end
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
