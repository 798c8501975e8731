// cmd/evaluate.go
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhiraj070/RuleMind/audit"
	"github.com/abhiraj070/RuleMind/config"
	"github.com/abhiraj070/RuleMind/dao"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/pdp/engine"
)

func newEvaluateCmd() *cobra.Command {
	var (
		file      string
		rulesFile string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one transaction offline against a rule file",
		Long: "Evaluate reads a transaction as JSON from --file (or stdin with \"-\") and prints the " +
			"verdict. Rules come from --rules, defaulting to the configured seed file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rulesFile == "" {
				rulesFile = config.GetConfig().Rules.SeedFile
			}
			tx, err := readTransaction(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			rules, err := dao.LoadSeedRules(rulesFile)
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}
			store := dao.NewMemoryRuleDAO()
			for _, rule := range rules {
				if _, err := store.CreateRule(cmd.Context(), rule); err != nil {
					return fmt.Errorf("failed to load rule %s: %w", rule.ID, err)
				}
			}

			auditService := audit.NewService(audit.NewMemoryRepository(), time.Second, 0)
			entry, err := engine.NewRuleEngine(store, auditService).Evaluate(cmd.Context(), tx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Transaction JSON file, or - for stdin")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Rule file in seed format")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readTransaction(stdin io.Reader, file string) (model.Transaction, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to read transaction: %w", err)
	}

	var tx model.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return tx, nil
}
