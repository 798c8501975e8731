package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_CloneIsDeep(t *testing.T) {
	original := Rule{
		ID: "RULE-003",
		Conditions: []Condition{
			{Field: FieldCountry, Operator: OpIn, Values: []string{"IR", "SY"}},
		},
	}

	clone := original.Clone()
	clone.Conditions[0].Values[0] = "IN"
	clone.Conditions = append(clone.Conditions, Condition{Field: FieldPAN, Operator: OpMissing})

	assert.Equal(t, "IR", original.Conditions[0].Values[0])
	assert.Len(t, original.Conditions, 1)
}

func TestRulePatch_Apply(t *testing.T) {
	rule := Rule{ID: "RULE-004", Name: "KYC Incomplete Alert", Severity: SeverityMedium, Action: ActionReview, Enabled: true}
	severity := SeverityHigh
	enabled := false

	patched := RulePatch{Severity: &severity, Enabled: &enabled}.Apply(rule)

	assert.Equal(t, "RULE-004", patched.ID)
	assert.Equal(t, "KYC Incomplete Alert", patched.Name)
	assert.Equal(t, SeverityHigh, patched.Severity)
	assert.False(t, patched.Enabled)
	assert.Equal(t, SeverityMedium, rule.Severity)
	assert.True(t, RulePatch{}.IsEmpty())
}

func TestRule_Rationale(t *testing.T) {
	assert.Equal(t, "custom", Rule{Message: "custom"}.Rationale())
	assert.Equal(t, "Transaction blocked: High-Risk Country Transfer (FATF)",
		Rule{Name: "High-Risk Country Transfer", Source: "FATF", Action: ActionBlock}.Rationale())
	assert.Equal(t, "Transaction flagged: KYC Incomplete Alert",
		Rule{Name: "KYC Incomplete Alert", Action: ActionReview}.Rationale())
}

func TestSeverity_Rank(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Zero(t, Severity("unknown").Rank())
}
