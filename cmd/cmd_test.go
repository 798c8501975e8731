package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEvaluateCmd(t *testing.T) {
	t.Run("BlockedCountry", func(t *testing.T) {
		txFile := writeFile(t, "tx.json", `{"transactionId":"TXN-C","country":"IR"}`)

		out, err := runCLI(t, "evaluate", "--file", txFile, "--rules", "../config/rules.seed.yaml")
		require.NoError(t, err)

		var entry model.AuditEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entry))
		assert.Equal(t, "TXN-C", entry.TransactionID)
		assert.Equal(t, model.VerdictFail, entry.Status)
		assert.True(t, entry.HasRule("RULE-003"))
	})

	t.Run("MalformedAmount", func(t *testing.T) {
		txFile := writeFile(t, "tx.json", `{"amount":"lots"}`)

		_, err := runCLI(t, "evaluate", "--file", txFile, "--rules", "../config/rules.seed.yaml")
		assert.Error(t, err)
	})

	t.Run("MissingRuleFile", func(t *testing.T) {
		txFile := writeFile(t, "tx.json", `{}`)

		_, err := runCLI(t, "evaluate", "--file", txFile, "--rules", filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})

	t.Run("FileFlagRequired", func(t *testing.T) {
		_, err := runCLI(t, "evaluate")
		assert.Error(t, err)
	})
}

func TestMigrateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "rulemind.db")
	t.Setenv("RULEMIND_SQLITE_PATH", path)

	_, err := runCLI(t, "migrate")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
