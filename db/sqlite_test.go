package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/db"
)

func TestRunMigrations_CreatesTables(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)

	for _, table := range []string{"rules", "audit_entries", "audit_entry_rules"} {
		var name string
		err := writeDB.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestAuditEntries_AppendOnly(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	ctx := context.Background()

	_, err := writeDB.ExecContext(ctx, `INSERT INTO audit_entries
		(id, transaction_id, status, message, evaluated_at, triggered_rules, snapshot)
		VALUES ('a1', 'TXN-1', 'pass', 'all checks passed.', 1, '[]', '{}')`)
	require.NoError(t, err)

	_, err = writeDB.ExecContext(ctx, `UPDATE audit_entries SET status = 'fail' WHERE id = 'a1'`)
	assert.Error(t, err)

	_, err = writeDB.ExecContext(ctx, `DELETE FROM audit_entries WHERE id = 'a1'`)
	assert.Error(t, err)
}

func TestOpenSQLite_RejectsUnknownMode(t *testing.T) {
	_, err := db.OpenSQLite(t.TempDir()+"/x.db", "admin", 0)
	assert.Error(t, err)
}
