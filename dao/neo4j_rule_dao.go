// dao/neo4j_rule_dao.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
	rulemind_neo4j "github.com/abhiraj070/RuleMind/model/neo4j"
)

// Neo4jRuleDAO stores each rule as a RULE node. Creation order comes from a
// counter node incremented in the same transaction as the create.
type Neo4jRuleDAO struct {
	Driver neo4j.DriverWithContext
	now    func() time.Time
}

func NewNeo4jRuleDAO(ctx context.Context, driver neo4j.DriverWithContext) (*Neo4jRuleDAO, error) {
	dao := &Neo4jRuleDAO{Driver: driver, now: nowUTC}
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		return nil, err
	}
	return dao, nil
}

// EnsureUniqueConstraint ensures the unique constraint on the rule id
func (dao *Neo4jRuleDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Rule ID")
	_, err := dao.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
        CREATE CONSTRAINT unique_rule_id IF NOT EXISTS
        FOR (r:%s) REQUIRE r.%s IS UNIQUE
        `, rulemind_neo4j.LabelRule, rulemind_neo4j.PropID)
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Rule ID", zap.Error(err))
		return fmt.Errorf("%w: create unique constraint: %w", rm_errors.ErrStorage, err)
	}
	return nil
}

func (dao *Neo4jRuleDAO) ListEnabledRules(ctx context.Context) ([]model.Rule, error) {
	query := `
    MATCH (r:RULE)
    WHERE r.enabled = true
    RETURN r
    ORDER BY r.seq
    `
	return dao.readRules(ctx, query, nil)
}

func (dao *Neo4jRuleDAO) ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	query := `
    MATCH (r:RULE)
    WHERE $q = '' OR toLower(r.id) CONTAINS $q OR toLower(r.name) CONTAINS $q OR toLower(r.source) CONTAINS $q
    RETURN r
    ORDER BY r.seq
    SKIP $offset
    `
	params := map[string]any{
		"q":      strings.ToLower(opts.Query),
		"offset": opts.Offset,
	}
	if opts.Limit > 0 {
		query += "LIMIT $limit"
		params["limit"] = opts.Limit
	}
	return dao.readRules(ctx, query, params)
}

func (dao *Neo4jRuleDAO) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	rules, err := dao.readRules(ctx, `MATCH (r:RULE {id: $id}) RETURN r`, map[string]any{"id": ruleID})
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		logger.Warn("Rule not found", zap.String("ruleID", ruleID))
		return nil, rm_errors.ErrRuleNotFound
	}
	return &rules[0], nil
}

func (dao *Neo4jRuleDAO) CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error) {
	start := time.Now()
	prepared, err := prepareNewRule(rule, dao.now())
	if err != nil {
		return nil, err
	}
	props, err := ruleProps(prepared)
	if err != nil {
		return nil, err
	}

	result, err := dao.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx, `MATCH (r:RULE {id: $id}) RETURN r.id`, map[string]any{"id": prepared.ID})
		if err != nil {
			return nil, err
		}
		if check.Next(ctx) {
			return nil, rm_errors.ErrRuleConflict
		}

		createQuery := `
            MERGE (c:RULE_SEQ {name: 'rule'})
            ON CREATE SET c.value = 0
            SET c.value = c.value + 1
            CREATE (r:RULE)
            SET r = $props, r.seq = c.value
            RETURN r
        `
		created, err := tx.Run(ctx, createQuery, map[string]any{"props": props})
		if err != nil {
			return nil, err
		}
		record, err := created.Single(ctx)
		if err != nil {
			return nil, err
		}
		node, _ := record.Values[0].(neo4j.Node)
		return mapNodeToRule(node)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create rule",
			zap.Error(err),
			zap.String("ruleID", prepared.ID),
			zap.Duration("duration", duration))
		if errors.Is(err, rm_errors.ErrRuleConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create rule: %w", rm_errors.ErrStorage, err)
	}

	created := result.(model.Rule)
	logger.Info("Rule created successfully",
		zap.String("ruleID", created.ID),
		zap.Duration("duration", duration))
	return &created, nil
}

func (dao *Neo4jRuleDAO) UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error) {
	return dao.mutate(ctx, ruleID, func(current model.Rule) (model.Rule, error) {
		return patchRule(current, patch, dao.now())
	})
}

func (dao *Neo4jRuleDAO) SetEnabled(ctx context.Context, ruleID string, enabled bool) (*model.Rule, error) {
	return dao.mutate(ctx, ruleID, func(current model.Rule) (model.Rule, error) {
		current.Enabled = enabled
		return touch(current, dao.now()), nil
	})
}

func (dao *Neo4jRuleDAO) CountRules(ctx context.Context) (int, error) {
	result, err := dao.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (r:RULE) RETURN count(r) AS total`, nil)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		total, _ := record.Get("total")
		return total, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count rules: %w", rm_errors.ErrStorage, err)
	}
	total, _ := result.(int64)
	return int(total), nil
}

// mutate reads, changes and writes back one rule in a single write
// transaction.
func (dao *Neo4jRuleDAO) mutate(ctx context.Context, ruleID string, change func(model.Rule) (model.Rule, error)) (*model.Rule, error) {
	start := time.Now()
	result, err := dao.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (r:RULE {id: $id}) RETURN r`, map[string]any{"id": ruleID})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, rm_errors.ErrRuleNotFound
		}
		node, _ := res.Record().Values[0].(neo4j.Node)
		current, err := mapNodeToRule(node)
		if err != nil {
			return nil, err
		}

		updated, err := change(current)
		if err != nil {
			return nil, err
		}
		props, err := ruleProps(updated)
		if err != nil {
			return nil, err
		}
		_, err = tx.Run(ctx, `MATCH (r:RULE {id: $id}) SET r += $props`, map[string]any{"id": ruleID, "props": props})
		if err != nil {
			return nil, err
		}
		return updated, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update rule",
			zap.Error(err),
			zap.String("ruleID", ruleID),
			zap.Duration("duration", duration))
		if errors.Is(err, rm_errors.ErrRuleNotFound) || errors.Is(err, rm_errors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: update rule: %w", rm_errors.ErrStorage, err)
	}

	updated := result.(model.Rule)
	logger.Info("Rule updated successfully",
		zap.String("ruleID", ruleID),
		zap.Int("version", updated.Version),
		zap.Duration("duration", duration))
	return &updated, nil
}

func (dao *Neo4jRuleDAO) readRules(ctx context.Context, query string, params map[string]any) ([]model.Rule, error) {
	result, err := dao.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		rules := []model.Rule{}
		for res.Next(ctx) {
			node, _ := res.Record().Values[0].(neo4j.Node)
			rule, err := mapNodeToRule(node)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		return rules, res.Err()
	})
	if err != nil {
		logger.Error("Failed to read rules", zap.Error(err))
		return nil, fmt.Errorf("%w: read rules: %w", rm_errors.ErrStorage, err)
	}
	return result.([]model.Rule), nil
}

func (dao *Neo4jRuleDAO) read(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func() {
		if err := session.Close(ctx); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()
	return session.ExecuteRead(ctx, work)
}

func (dao *Neo4jRuleDAO) write(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(ctx); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()
	return session.ExecuteWrite(ctx, work)
}

// ruleProps flattens a rule into node properties. Conditions are stored as
// a JSON string since Neo4j properties cannot hold nested maps.
func ruleProps(rule model.Rule) (map[string]any, error) {
	conditionsJSON, err := json.Marshal(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conditions: %w", err)
	}
	return map[string]any{
		rulemind_neo4j.PropID:         rule.ID,
		rulemind_neo4j.PropName:       rule.Name,
		rulemind_neo4j.PropConditions: string(conditionsJSON),
		rulemind_neo4j.PropSeverity:   string(rule.Severity),
		rulemind_neo4j.PropAction:     string(rule.Action),
		rulemind_neo4j.PropSource:     rule.Source,
		rulemind_neo4j.PropMessage:    rule.Message,
		rulemind_neo4j.PropEnabled:    rule.Enabled,
		rulemind_neo4j.PropVersion:    int64(rule.Version),
		rulemind_neo4j.PropCreatedAt:  rule.CreatedAt.Format(time.RFC3339Nano),
		rulemind_neo4j.PropUpdatedAt:  rule.UpdatedAt.Format(time.RFC3339Nano),
	}, nil
}

func mapNodeToRule(node neo4j.Node) (model.Rule, error) {
	props := node.Props
	rule := model.Rule{
		ID:       stringProp(props, rulemind_neo4j.PropID),
		Name:     stringProp(props, rulemind_neo4j.PropName),
		Severity: model.Severity(stringProp(props, rulemind_neo4j.PropSeverity)),
		Action:   model.Action(stringProp(props, rulemind_neo4j.PropAction)),
		Source:   stringProp(props, rulemind_neo4j.PropSource),
		Message:  stringProp(props, rulemind_neo4j.PropMessage),
	}
	if enabled, ok := props[rulemind_neo4j.PropEnabled].(bool); ok {
		rule.Enabled = enabled
	}
	if version, ok := props[rulemind_neo4j.PropVersion].(int64); ok {
		rule.Version = int(version)
	}

	if err := json.Unmarshal([]byte(stringProp(props, rulemind_neo4j.PropConditions)), &rule.Conditions); err != nil {
		return model.Rule{}, fmt.Errorf("failed to decode conditions of rule %s: %w", rule.ID, err)
	}

	var err error
	if rule.CreatedAt, err = time.Parse(time.RFC3339Nano, stringProp(props, rulemind_neo4j.PropCreatedAt)); err != nil {
		return model.Rule{}, fmt.Errorf("failed to parse createdAt of rule %s: %w", rule.ID, err)
	}
	if rule.UpdatedAt, err = time.Parse(time.RFC3339Nano, stringProp(props, rulemind_neo4j.PropUpdatedAt)); err != nil {
		return model.Rule{}, fmt.Errorf("failed to parse updatedAt of rule %s: %w", rule.ID, err)
	}
	return rule, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}
