// audit/sqlite.go
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
)

const entryColumns = `id, transaction_id, status, message, evaluated_at, triggered_rules, snapshot`

// SQLiteRepository stores the audit trail in SQLite. Update and delete are
// refused by triggers in the schema.
type SQLiteRepository struct {
	writeDB *sql.DB
	readDB  *sql.DB
}

func NewSQLiteRepository(writeDB, readDB *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{writeDB: writeDB, readDB: readDB}
}

func (r *SQLiteRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	triggeredJSON, err := json.Marshal(entry.TriggeredRules)
	if err != nil {
		return fmt.Errorf("failed to marshal triggered rules: %w", err)
	}
	snapshotJSON, err := json.Marshal(entry.Transaction)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction snapshot: %w", err)
	}

	tx, err := r.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TransactionID, string(entry.Status), entry.Message,
		entry.EvaluatedAt.UnixNano(), string(triggeredJSON), string(snapshotJSON))
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	for i, ruleID := range entry.RuleIDs() {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO audit_entry_rules (entry_id, position, rule_id) VALUES (?, ?, ?)`,
			entry.ID, i, ruleID)
		if err != nil {
			return fmt.Errorf("insert audit entry rule: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) Page(ctx context.Context, filter model.AuditFilter, after *Cursor, limit int) ([]model.AuditEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.TransactionID != "" {
		where = append(where, "transaction_id = ?")
		args = append(args, filter.TransactionID)
	}
	if filter.Result != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Result))
	}
	if !filter.From.IsZero() {
		where = append(where, "evaluated_at >= ?")
		args = append(args, filter.From.UnixNano())
	}
	if !filter.To.IsZero() {
		where = append(where, "evaluated_at <= ?")
		args = append(args, filter.To.UnixNano())
	}
	if filter.RuleID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM audit_entry_rules r WHERE r.entry_id = audit_entries.id AND r.rule_id = ?)")
		args = append(args, filter.RuleID)
	}
	if after != nil {
		at := after.EvaluatedAt.UnixNano()
		where = append(where, "(evaluated_at < ? OR (evaluated_at = ? AND id < ?))")
		args = append(args, at, at, after.ID)
	}

	query := `SELECT ` + entryColumns + ` FROM audit_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY evaluated_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*model.AuditEntry, error) {
	entry, err := scanEntry(r.readDB.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM audit_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, rm_errors.ErrAuditEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.AuditEntry, error) {
	var (
		entry         model.AuditEntry
		status        string
		evaluatedAt   int64
		triggeredJSON string
		snapshotJSON  string
	)
	if err := row.Scan(&entry.ID, &entry.TransactionID, &status, &entry.Message,
		&evaluatedAt, &triggeredJSON, &snapshotJSON); err != nil {
		return model.AuditEntry{}, err
	}
	entry.Status = model.Verdict(status)
	entry.EvaluatedAt = time.Unix(0, evaluatedAt).UTC()
	if err := json.Unmarshal([]byte(triggeredJSON), &entry.TriggeredRules); err != nil {
		return model.AuditEntry{}, fmt.Errorf("decode triggered rules of %s: %w", entry.ID, err)
	}
	if entry.TriggeredRules == nil {
		entry.TriggeredRules = []model.TriggeredRule{}
	}
	if err := json.Unmarshal([]byte(snapshotJSON), &entry.Transaction); err != nil {
		return model.AuditEntry{}, fmt.Errorf("decode transaction snapshot of %s: %w", entry.ID, err)
	}
	return entry, nil
}
