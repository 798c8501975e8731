// audit/model.go
package audit

import (
	"time"

	"github.com/abhiraj070/RuleMind/model"
)

// Cursor marks the last entry of a page. Pages are ordered newest first,
// ties broken by descending id.
type Cursor struct {
	EvaluatedAt time.Time
	ID          string
}

// CursorOf returns the cursor positioned at entry.
func CursorOf(entry model.AuditEntry) *Cursor {
	return &Cursor{EvaluatedAt: entry.EvaluatedAt, ID: entry.ID}
}

// Before reports whether entry sorts after the cursor, meaning it belongs on
// a later page.
func (c *Cursor) Before(entry model.AuditEntry) bool {
	if c == nil {
		return true
	}
	if entry.EvaluatedAt.Equal(c.EvaluatedAt) {
		return entry.ID < c.ID
	}
	return entry.EvaluatedAt.Before(c.EvaluatedAt)
}

// Document is the indexed form of an audit entry. Rule ids are flattened
// so they can be filtered on directly.
type Document struct {
	ID               string                    `json:"id"`
	TransactionID    string                    `json:"transactionId"`
	Status           string                    `json:"status"`
	Message          string                    `json:"message"`
	RuleIDs          []string                  `json:"ruleIds"`
	TriggeredRules   []model.TriggeredRule     `json:"triggeredRules"`
	EvaluatedAt      time.Time                 `json:"evaluatedAt"`
	EvaluatedAtNanos int64                     `json:"evaluatedAtNanos"`
	Transaction      model.TransactionSnapshot `json:"transaction"`
}

func NewDocument(entry model.AuditEntry) Document {
	return Document{
		ID:               entry.ID,
		TransactionID:    entry.TransactionID,
		Status:           string(entry.Status),
		Message:          entry.Message,
		RuleIDs:          entry.RuleIDs(),
		TriggeredRules:   entry.TriggeredRules,
		EvaluatedAt:      entry.EvaluatedAt,
		EvaluatedAtNanos: entry.EvaluatedAt.UnixNano(),
		Transaction:      entry.Transaction,
	}
}

func (d Document) Entry() model.AuditEntry {
	triggered := d.TriggeredRules
	if triggered == nil {
		triggered = []model.TriggeredRule{}
	}
	return model.AuditEntry{
		ID: d.ID,
		EvaluationResult: model.EvaluationResult{
			TransactionID:  d.TransactionID,
			Status:         model.Verdict(d.Status),
			Message:        d.Message,
			TriggeredRules: triggered,
			EvaluatedAt:    time.Unix(0, d.EvaluatedAtNanos).UTC(),
		},
		Transaction: d.Transaction,
	}
}
