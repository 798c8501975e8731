// model/evaluation.go
package model

import (
	"slices"
	"time"
)

type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictWarning Verdict = "warning"
	VerdictFail    Verdict = "fail"
)

// Valid reports whether v is one of the three verdicts.
func (v Verdict) Valid() bool {
	return v == VerdictPass || v == VerdictWarning || v == VerdictFail
}

type TriggeredRule struct {
	RuleID   string   `json:"ruleId"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Action   Action   `json:"action"`
}

// EvaluationResult is the outcome of one evaluation. TriggeredRules keeps
// rule evaluation order.
type EvaluationResult struct {
	TransactionID  string          `json:"transactionId"`
	Status         Verdict         `json:"status"`
	Message        string          `json:"message"`
	TriggeredRules []TriggeredRule `json:"triggeredRules"`
	EvaluatedAt    time.Time       `json:"evaluatedAt"`
}

// HasRule reports whether ruleID triggered in this evaluation.
func (r EvaluationResult) HasRule(ruleID string) bool {
	return slices.ContainsFunc(r.TriggeredRules, func(t TriggeredRule) bool {
		return t.RuleID == ruleID
	})
}
