// dao/sqlite_rule_dao.go
package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

const ruleColumns = `id, name, conditions, severity, action, source, message, enabled, version, created_at, updated_at`

// SQLiteRuleDAO stores rules in the SQLite database. The autoincrement seq
// column records creation order.
type SQLiteRuleDAO struct {
	writeDB *sql.DB
	readDB  *sql.DB
	now     func() time.Time
}

func NewSQLiteRuleDAO(writeDB, readDB *sql.DB) *SQLiteRuleDAO {
	return &SQLiteRuleDAO{writeDB: writeDB, readDB: readDB, now: nowUTC}
}

func (dao *SQLiteRuleDAO) ListEnabledRules(ctx context.Context) ([]model.Rule, error) {
	start := time.Now()
	rows, err := dao.readDB.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM rules WHERE enabled = 1 ORDER BY seq`)
	if err != nil {
		logger.Error("Failed to list enabled rules", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: list enabled rules: %w", rm_errors.ErrStorage, err)
	}
	return scanRules(rows)
}

// ListRules pages in SQL when there is no search. A search is matched in Go
// because SQLite's lower() only folds ASCII.
func (dao *SQLiteRuleDAO) ListRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	if opts.Query != "" {
		return dao.searchRules(ctx, opts)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	rows, err := dao.readDB.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM rules ORDER BY seq LIMIT ? OFFSET ?`, limit, opts.Offset)
	if err != nil {
		logger.Error("Failed to list rules", zap.Error(err))
		return nil, fmt.Errorf("%w: list rules: %w", rm_errors.ErrStorage, err)
	}
	return scanRules(rows)
}

func (dao *SQLiteRuleDAO) searchRules(ctx context.Context, opts model.RuleListOptions) ([]model.Rule, error) {
	rows, err := dao.readDB.QueryContext(ctx, `SELECT `+ruleColumns+` FROM rules ORDER BY seq`)
	if err != nil {
		logger.Error("Failed to search rules", zap.Error(err), zap.String("query", opts.Query))
		return nil, fmt.Errorf("%w: search rules: %w", rm_errors.ErrStorage, err)
	}
	all, err := scanRules(rows)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Rule, 0, len(all))
	for _, rule := range all {
		if matchesQuery(rule, opts.Query) {
			matched = append(matched, rule)
		}
	}
	start, end := pageBounds(len(matched), opts.Limit, opts.Offset)
	return matched[start:end], nil
}

func (dao *SQLiteRuleDAO) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	return getRuleRow(dao.readDB.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM rules WHERE id = ?`, ruleID))
}

func (dao *SQLiteRuleDAO) CreateRule(ctx context.Context, rule model.Rule) (*model.Rule, error) {
	start := time.Now()
	prepared, err := prepareNewRule(rule, dao.now())
	if err != nil {
		return nil, err
	}
	conditionsJSON, err := json.Marshal(prepared.Conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conditions: %w", err)
	}

	result, err := dao.writeDB.ExecContext(ctx,
		`INSERT INTO rules (`+ruleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		prepared.ID, prepared.Name, string(conditionsJSON), prepared.Severity, prepared.Action,
		prepared.Source, prepared.Message, prepared.Enabled, prepared.Version,
		prepared.CreatedAt.UnixNano(), prepared.UpdatedAt.UnixNano())
	if err != nil {
		logger.Error("Failed to create rule", zap.Error(err), zap.String("ruleID", prepared.ID))
		return nil, fmt.Errorf("%w: create rule: %w", rm_errors.ErrStorage, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, rm_errors.ErrRuleConflict
	}

	logger.Info("Rule created successfully",
		zap.String("ruleID", prepared.ID),
		zap.Duration("duration", time.Since(start)))
	return &prepared, nil
}

func (dao *SQLiteRuleDAO) UpdateRule(ctx context.Context, ruleID string, patch model.RulePatch) (*model.Rule, error) {
	return dao.mutate(ctx, ruleID, func(current model.Rule) (model.Rule, error) {
		return patchRule(current, patch, dao.now())
	})
}

func (dao *SQLiteRuleDAO) SetEnabled(ctx context.Context, ruleID string, enabled bool) (*model.Rule, error) {
	return dao.mutate(ctx, ruleID, func(current model.Rule) (model.Rule, error) {
		current.Enabled = enabled
		return touch(current, dao.now()), nil
	})
}

func (dao *SQLiteRuleDAO) CountRules(ctx context.Context) (int, error) {
	var count int
	if err := dao.readDB.QueryRowContext(ctx, `SELECT count(*) FROM rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count rules: %w", rm_errors.ErrStorage, err)
	}
	return count, nil
}

// mutate runs a read-modify-write of one rule inside a write transaction.
func (dao *SQLiteRuleDAO) mutate(ctx context.Context, ruleID string, change func(model.Rule) (model.Rule, error)) (*model.Rule, error) {
	tx, err := dao.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", rm_errors.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getRuleRow(tx.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM rules WHERE id = ?`, ruleID))
	if err != nil {
		return nil, err
	}
	updated, err := change(*current)
	if err != nil {
		return nil, err
	}
	conditionsJSON, err := json.Marshal(updated.Conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conditions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rules SET name = ?, conditions = ?, severity = ?, action = ?, source = ?, message = ?,
		 enabled = ?, version = ?, updated_at = ? WHERE id = ?`,
		updated.Name, string(conditionsJSON), updated.Severity, updated.Action, updated.Source,
		updated.Message, updated.Enabled, updated.Version, updated.UpdatedAt.UnixNano(), ruleID)
	if err != nil {
		logger.Error("Failed to update rule", zap.Error(err), zap.String("ruleID", ruleID))
		return nil, fmt.Errorf("%w: update rule: %w", rm_errors.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", rm_errors.ErrStorage, err)
	}
	return &updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getRuleRow(row rowScanner) (*model.Rule, error) {
	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rm_errors.ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func scanRules(rows *sql.Rows) ([]model.Rule, error) {
	defer rows.Close()

	rules := []model.Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read rules: %w", rm_errors.ErrStorage, err)
	}
	return rules, nil
}

func scanRule(row rowScanner) (model.Rule, error) {
	var (
		rule           model.Rule
		conditionsJSON string
		createdAt      int64
		updatedAt      int64
	)
	err := row.Scan(&rule.ID, &rule.Name, &conditionsJSON, &rule.Severity, &rule.Action,
		&rule.Source, &rule.Message, &rule.Enabled, &rule.Version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Rule{}, err
	}
	if err != nil {
		return model.Rule{}, fmt.Errorf("%w: scan rule: %w", rm_errors.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(conditionsJSON), &rule.Conditions); err != nil {
		return model.Rule{}, fmt.Errorf("%w: decode conditions of rule %s: %w", rm_errors.ErrStorage, rule.ID, err)
	}
	rule.CreatedAt = time.Unix(0, createdAt).UTC()
	rule.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return rule, nil
}
