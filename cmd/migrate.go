// cmd/migrate.go
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhiraj070/RuleMind/config"
	logger "github.com/abhiraj070/RuleMind/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQLite schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path := config.GetConfig().SQLite.Path
			writeDB, readDB, err := openMigratedSQLite(path)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			logger.Info("Migrations applied", zap.String("path", path))
			return nil
		},
	}
}
