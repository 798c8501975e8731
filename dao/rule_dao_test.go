package dao_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/dao"
	"github.com/abhiraj070/RuleMind/db"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
)

func amountRule(id string, threshold string) model.Rule {
	return model.Rule{
		ID:       id,
		Name:     "Amount above " + threshold,
		Severity: model.SeverityHigh,
		Action:   model.ActionReview,
		Source:   "RBI",
		Enabled:  true,
		Conditions: []model.Condition{
			{Field: model.FieldAmount, Operator: model.OpGreaterThan, Value: model.FlexString(threshold)},
		},
	}
}

func storesUnderTest(t *testing.T) map[string]func(t *testing.T) dao.RuleStore {
	return map[string]func(t *testing.T) dao.RuleStore{
		"memory": func(t *testing.T) dao.RuleStore {
			return dao.NewMemoryRuleDAO()
		},
		"sqlite": func(t *testing.T) dao.RuleStore {
			writeDB, readDB := db.OpenTestSQLite(t)
			return dao.NewSQLiteRuleDAO(writeDB, readDB)
		},
	}
}

func TestRuleStore(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("CreateAndGet", func(t *testing.T) {
				store := newStore(t)
				created, err := store.CreateRule(ctx, amountRule("R-1", "1000"))
				require.NoError(t, err)
				assert.Equal(t, "R-1", created.ID)
				assert.Equal(t, 1, created.Version)
				assert.False(t, created.CreatedAt.IsZero())

				got, err := store.GetRule(ctx, "R-1")
				require.NoError(t, err)
				assert.Equal(t, created.Name, got.Name)
				assert.Equal(t, created.Conditions, got.Conditions)
				assert.True(t, got.Enabled)
			})

			t.Run("GeneratesID", func(t *testing.T) {
				store := newStore(t)
				created, err := store.CreateRule(ctx, amountRule("", "1000"))
				require.NoError(t, err)
				assert.NotEmpty(t, created.ID)
			})

			t.Run("DuplicateIDConflicts", func(t *testing.T) {
				store := newStore(t)
				_, err := store.CreateRule(ctx, amountRule("R-1", "1000"))
				require.NoError(t, err)
				_, err = store.CreateRule(ctx, amountRule("R-1", "2000"))
				assert.ErrorIs(t, err, rm_errors.ErrRuleConflict)
			})

			t.Run("RejectsInvalidRule", func(t *testing.T) {
				store := newStore(t)
				rule := amountRule("R-1", "1000")
				rule.Conditions[0].Field = "merchant"
				_, err := store.CreateRule(ctx, rule)
				assert.ErrorIs(t, err, rm_errors.ErrValidation)

				rule = amountRule("R-2", "lots")
				_, err = store.CreateRule(ctx, rule)
				assert.ErrorIs(t, err, rm_errors.ErrValidation)

				count, err := store.CountRules(ctx)
				require.NoError(t, err)
				assert.Zero(t, count)
			})

			t.Run("GetMissing", func(t *testing.T) {
				store := newStore(t)
				_, err := store.GetRule(ctx, "nope")
				assert.ErrorIs(t, err, rm_errors.ErrRuleNotFound)
				_, err = store.SetEnabled(ctx, "nope", false)
				assert.ErrorIs(t, err, rm_errors.ErrRuleNotFound)
				name := "x"
				_, err = store.UpdateRule(ctx, "nope", model.RulePatch{Name: &name})
				assert.ErrorIs(t, err, rm_errors.ErrRuleNotFound)
			})

			t.Run("EnabledRulesInCreationOrder", func(t *testing.T) {
				store := newStore(t)
				for _, id := range []string{"R-3", "R-1", "R-2"} {
					_, err := store.CreateRule(ctx, amountRule(id, "1000"))
					require.NoError(t, err)
				}
				_, err := store.SetEnabled(ctx, "R-1", false)
				require.NoError(t, err)

				rules, err := store.ListEnabledRules(ctx)
				require.NoError(t, err)
				require.Len(t, rules, 2)
				assert.Equal(t, "R-3", rules[0].ID)
				assert.Equal(t, "R-2", rules[1].ID)

				all, err := store.ListRules(ctx, model.RuleListOptions{})
				require.NoError(t, err)
				require.Len(t, all, 3)
				assert.Equal(t, []string{"R-3", "R-1", "R-2"}, []string{all[0].ID, all[1].ID, all[2].ID})
			})

			t.Run("ListPaginationAndSearch", func(t *testing.T) {
				store := newStore(t)
				for _, id := range []string{"AML-1", "KYC-1", "AML-2"} {
					_, err := store.CreateRule(ctx, amountRule(id, "1000"))
					require.NoError(t, err)
				}

				page, err := store.ListRules(ctx, model.RuleListOptions{Limit: 1, Offset: 1})
				require.NoError(t, err)
				require.Len(t, page, 1)
				assert.Equal(t, "KYC-1", page[0].ID)

				found, err := store.ListRules(ctx, model.RuleListOptions{Query: "aml"})
				require.NoError(t, err)
				require.Len(t, found, 2)
				assert.Equal(t, "AML-1", found[0].ID)

				empty, err := store.ListRules(ctx, model.RuleListOptions{Offset: 10})
				require.NoError(t, err)
				assert.Empty(t, empty)
			})

			t.Run("SearchFoldsNonASCII", func(t *testing.T) {
				store := newStore(t)
				rule := amountRule("FEMA-1", "1000")
				rule.Name = "ÜBERWEISUNG Limit"
				rule.Source = "Réserve Bank"
				_, err := store.CreateRule(ctx, rule)
				require.NoError(t, err)
				_, err = store.CreateRule(ctx, amountRule("AML-1", "1000"))
				require.NoError(t, err)

				found, err := store.ListRules(ctx, model.RuleListOptions{Query: "überweisung"})
				require.NoError(t, err)
				require.Len(t, found, 1)
				assert.Equal(t, "FEMA-1", found[0].ID)

				found, err = store.ListRules(ctx, model.RuleListOptions{Query: "RÉSERVE"})
				require.NoError(t, err)
				require.Len(t, found, 1)

				found, err = store.ListRules(ctx, model.RuleListOptions{Query: "-1", Offset: 1, Limit: 5})
				require.NoError(t, err)
				require.Len(t, found, 1)
				assert.Equal(t, "AML-1", found[0].ID)
			})

			t.Run("UpdateBumpsVersion", func(t *testing.T) {
				store := newStore(t)
				created, err := store.CreateRule(ctx, amountRule("R-1", "1000"))
				require.NoError(t, err)

				severity := model.SeverityCritical
				updated, err := store.UpdateRule(ctx, "R-1", model.RulePatch{Severity: &severity})
				require.NoError(t, err)
				assert.Equal(t, model.SeverityCritical, updated.Severity)
				assert.Equal(t, 2, updated.Version)
				assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
				assert.Equal(t, created.CreatedAt, updated.CreatedAt)

				toggled, err := store.SetEnabled(ctx, "R-1", false)
				require.NoError(t, err)
				assert.False(t, toggled.Enabled)
				assert.Equal(t, 3, toggled.Version)
			})

			t.Run("UpdateRejectsInvalidPatch", func(t *testing.T) {
				store := newStore(t)
				_, err := store.CreateRule(ctx, amountRule("R-1", "1000"))
				require.NoError(t, err)

				_, err = store.UpdateRule(ctx, "R-1", model.RulePatch{Conditions: []model.Condition{
					{Field: model.FieldCountry, Operator: model.OpGreaterThan, Value: "IN"},
				}})
				assert.ErrorIs(t, err, rm_errors.ErrValidation)

				got, err := store.GetRule(ctx, "R-1")
				require.NoError(t, err)
				assert.Equal(t, 1, got.Version)
			})

			t.Run("SnapshotsAreCopies", func(t *testing.T) {
				store := newStore(t)
				rule := amountRule("R-1", "1000")
				rule.Conditions = append(rule.Conditions, model.Condition{
					Field: model.FieldCountry, Operator: model.OpIn, Values: []string{"KP", "IR"},
				})
				_, err := store.CreateRule(ctx, rule)
				require.NoError(t, err)

				snapshot, err := store.ListEnabledRules(ctx)
				require.NoError(t, err)
				snapshot[0].Conditions[1].Values[0] = "XX"
				snapshot[0].Name = "mutated"

				again, err := store.ListEnabledRules(ctx)
				require.NoError(t, err)
				assert.Equal(t, "KP", again[0].Conditions[1].Values[0])
				assert.NotEqual(t, "mutated", again[0].Name)
			})
		})
	}
}

func TestSeedRuleStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - id: RULE-001
    name: Large Cash Transaction Alert
    severity: critical
    action: block
    source: RBI
    conditions:
      - field: amount
        operator: ">"
        value: 1000000
      - field: pan
        operator: missing
  - id: RULE-002
    name: Expired KYC
    severity: high
    action: review
    enabled: false
    conditions:
      - field: kyc_status
        operator: "="
        value: expired
`), 0o600))

	store := dao.NewMemoryRuleDAO()
	seeded, err := dao.SeedRuleStore(ctx, store, path)
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)

	first, err := store.GetRule(ctx, "RULE-001")
	require.NoError(t, err)
	assert.True(t, first.Enabled)
	assert.Equal(t, "1000000", first.Conditions[0].Value.String())

	second, err := store.GetRule(ctx, "RULE-002")
	require.NoError(t, err)
	assert.False(t, second.Enabled)

	again, err := dao.SeedRuleStore(ctx, store, path)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestSeedRuleStore_MissingFile(t *testing.T) {
	seeded, err := dao.SeedRuleStore(context.Background(), dao.NewMemoryRuleDAO(), filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Zero(t, seeded)
}

func TestLoadSeedRules_ShippedFile(t *testing.T) {
	rules, err := dao.LoadSeedRules("../config/rules.seed.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	store := dao.NewMemoryRuleDAO()
	for _, rule := range rules {
		_, err := store.CreateRule(context.Background(), rule)
		require.NoError(t, err, rule.ID)
	}
}
