// cmd/storage.go
package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhiraj070/RuleMind/audit"
	"github.com/abhiraj070/RuleMind/config"
	"github.com/abhiraj070/RuleMind/dao"
	"github.com/abhiraj070/RuleMind/db"
	logger "github.com/abhiraj070/RuleMind/logging"
)

// backends holds the stores selected by configuration and how to release them.
type backends struct {
	rules   dao.RuleStore
	audit   audit.Repository
	closers []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.Configuration) (*backends, error) {
	b := &backends{}
	var writeDB, readDB *sql.DB

	// SQLite is opened and migrated once when either store uses it.
	sqlite := func() error {
		if writeDB != nil {
			return nil
		}
		var err error
		writeDB, readDB, err = openMigratedSQLite(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() {
			_ = readDB.Close()
			_ = writeDB.Close()
		})
		return nil
	}

	fail := func(err error) (*backends, error) {
		b.Close()
		return nil, err
	}

	switch cfg.Storage.Rules {
	case "", "memory":
		b.rules = dao.NewMemoryRuleDAO()
	case "sqlite":
		if err := sqlite(); err != nil {
			return fail(err)
		}
		b.rules = dao.NewSQLiteRuleDAO(writeDB, readDB)
	case "neo4j":
		b.closers = append(b.closers, db.CloseNeo4j)
		if err := db.InitNeo4j(ctx); err != nil {
			return fail(err)
		}
		store, err := dao.NewNeo4jRuleDAO(ctx, db.Neo4jDriver)
		if err != nil {
			return fail(err)
		}
		b.rules = store
	default:
		return fail(fmt.Errorf("unknown rule storage %q", cfg.Storage.Rules))
	}

	switch cfg.Storage.Audit {
	case "", "memory":
		b.audit = audit.NewMemoryRepository()
	case "sqlite":
		if err := sqlite(); err != nil {
			return fail(err)
		}
		b.audit = audit.NewSQLiteRepository(writeDB, readDB)
	case "elasticsearch":
		repo, err := audit.NewElasticsearchRepository(ctx, cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			return fail(err)
		}
		b.audit = repo
	default:
		return fail(fmt.Errorf("unknown audit storage %q", cfg.Storage.Audit))
	}

	logger.Info("Storage initialized",
		zap.String("rules", cfg.Storage.Rules),
		zap.String("audit", cfg.Storage.Audit))
	return b, nil
}

func openMigratedSQLite(path string) (*sql.DB, *sql.DB, error) {
	writeDB, readDB, err := db.OpenSQLitePair(path, 0)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(writeDB); err != nil {
		return nil, nil, errors.Join(err, readDB.Close(), writeDB.Close())
	}
	return writeDB, readDB, nil
}
