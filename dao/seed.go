// dao/seed.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
	"github.com/abhiraj070/RuleMind/model"
)

type seedFile struct {
	Rules []seedRule `yaml:"rules"`
}

// seedRule lets a seed entry leave enabled unset, which means enabled.
type seedRule struct {
	model.Rule `yaml:",inline"`
	Enabled    *bool `yaml:"enabled"`
}

// LoadSeedRules reads rule definitions from a YAML file, in file order.
func LoadSeedRules(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	rules := make([]model.Rule, 0, len(file.Rules))
	for _, entry := range file.Rules {
		rule := entry.Rule
		rule.Enabled = entry.Enabled == nil || *entry.Enabled
		rules = append(rules, rule)
	}
	return rules, nil
}

// SeedRuleStore loads the seed file into store when the store holds no
// rules. A missing seed file is not an error.
func SeedRuleStore(ctx context.Context, store RuleStore, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	count, err := store.CountRules(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Debug("Rule store already populated, skipping seed", zap.Int("rules", count))
		return 0, nil
	}

	rules, err := LoadSeedRules(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("No seed file found", zap.String("path", path))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, rule := range rules {
		if _, err := store.CreateRule(ctx, rule); err != nil {
			if errors.Is(err, rm_errors.ErrRuleConflict) {
				continue
			}
			return seeded, fmt.Errorf("failed to seed rule %s: %w", rule.ID, err)
		}
		seeded++
	}

	logger.Info("Seeded rule store", zap.String("path", path), zap.Int("rules", seeded))
	return seeded, nil
}
