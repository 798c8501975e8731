// model/audit.go
package model

import (
	"slices"
	"time"
)

// AuditEntry is the immutable record of one evaluation.
type AuditEntry struct {
	ID string `json:"id"`
	EvaluationResult
	Transaction TransactionSnapshot `json:"transaction"`
}

// Clone returns a deep copy of e.
func (e AuditEntry) Clone() AuditEntry {
	out := e
	out.TriggeredRules = slices.Clone(e.TriggeredRules)
	return out
}

// RuleIDs lists the ids of the rules that triggered, in evaluation order.
func (e AuditEntry) RuleIDs() []string {
	ids := make([]string, 0, len(e.TriggeredRules))
	for _, t := range e.TriggeredRules {
		ids = append(ids, t.RuleID)
	}
	return ids
}

// AuditFilter narrows an audit query. Zero values match everything; the
// time range is inclusive on both ends.
type AuditFilter struct {
	TransactionID string
	RuleID        string
	Result        Verdict
	From          time.Time
	To            time.Time
}

// Matches reports whether e passes the filter.
func (f AuditFilter) Matches(e AuditEntry) bool {
	if f.TransactionID != "" && e.TransactionID != f.TransactionID {
		return false
	}
	if f.RuleID != "" && !e.HasRule(f.RuleID) {
		return false
	}
	if f.Result != "" && e.Status != f.Result {
		return false
	}
	if !f.From.IsZero() && e.EvaluatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.EvaluatedAt.After(f.To) {
		return false
	}
	return true
}

// DashboardSummary aggregates audit history for the compliance dashboard.
type DashboardSummary struct {
	TotalEvaluations int             `json:"totalEvaluations"`
	Passed           int             `json:"passed"`
	Warnings         int             `json:"warnings"`
	Failed           int             `json:"failed"`
	ComplianceRate   float64         `json:"complianceRate"`
	ViolationsByRule []RuleViolation `json:"violationsByRule"`
	RecentFailures   []AuditEntry    `json:"recentFailures"`
}

type RuleViolation struct {
	RuleID   string   `json:"ruleId"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

// AuditPage is one page of an audit query.
type AuditPage struct {
	Entries []AuditEntry `json:"entries"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	HasMore bool         `json:"hasMore"`
}
