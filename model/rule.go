// model/rule.go
package model

import (
	"slices"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities; higher is more severe. Unknown severities rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type Action string

const (
	ActionBlock        Action = "block"
	ActionWarn         Action = "warn"
	ActionRequireField Action = "require_field"
	ActionReview       Action = "review"
)

func (a Action) Valid() bool {
	switch a {
	case ActionBlock, ActionWarn, ActionRequireField, ActionReview:
		return true
	}
	return false
}

type Operator string

const (
	OpGreaterThan Operator = ">"
	OpLessThan    Operator = "<"
	OpEqual       Operator = "="
	OpNotEqual    Operator = "!="
	OpExists      Operator = "exists"
	OpMissing     Operator = "missing"
	OpIn          Operator = "in"
)

// Condition is one comparison a rule makes against a transaction field.
// Value is used by the comparison operators, Values by "in", and neither by
// "exists"/"missing".
type Condition struct {
	Field    string     `json:"field" yaml:"field" validate:"required"`
	Operator Operator   `json:"operator" yaml:"operator"`
	Value    FlexString `json:"value,omitempty" yaml:"value,omitempty"`
	Values   []string   `json:"values,omitempty" yaml:"values,omitempty"`
}

// Rule is a stored compliance check. All conditions must match for the rule
// to trigger. Rules are never deleted; Enabled=false retires them.
type Rule struct {
	ID         string      `json:"id" yaml:"id" validate:"omitempty,max=64,printascii"`
	Name       string      `json:"name" yaml:"name" validate:"required,max=200"`
	Conditions []Condition `json:"conditions" yaml:"conditions" validate:"required,min=1,dive"`
	Severity   Severity    `json:"severity" yaml:"severity" validate:"oneof=critical high medium low"`
	Action     Action      `json:"action" yaml:"action" validate:"oneof=block warn require_field review"`
	Source     string      `json:"source" yaml:"source" validate:"max=200"`
	Message    string      `json:"message,omitempty" yaml:"message,omitempty"`
	Enabled    bool        `json:"enabled" yaml:"-"`
	Version    int         `json:"version" yaml:"-"`
	CreatedAt  time.Time   `json:"createdAt" yaml:"-"`
	UpdatedAt  time.Time   `json:"lastModified" yaml:"-"`
}

// Clone returns a deep copy that shares no slices with r.
func (r Rule) Clone() Rule {
	out := r
	out.Conditions = make([]Condition, len(r.Conditions))
	for i, c := range r.Conditions {
		c.Values = slices.Clone(c.Values)
		out.Conditions[i] = c
	}
	return out
}

// Rationale is the human-readable reason reported when the rule triggers.
func (r Rule) Rationale() string {
	if r.Message != "" {
		return r.Message
	}
	prefix := "Transaction flagged"
	switch r.Action {
	case ActionBlock:
		prefix = "Transaction blocked"
	case ActionWarn:
		prefix = "Transaction warning"
	}
	if r.Source != "" {
		return prefix + ": " + r.Name + " (" + r.Source + ")"
	}
	return prefix + ": " + r.Name
}

// RulePatch is a partial update. Nil fields are left unchanged; the rule id
// can never be patched.
type RulePatch struct {
	Name       *string     `json:"name,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
	Severity   *Severity   `json:"severity,omitempty"`
	Action     *Action     `json:"action,omitempty"`
	Source     *string     `json:"source,omitempty"`
	Message    *string     `json:"message,omitempty"`
	Enabled    *bool       `json:"enabled,omitempty"`
}

// Apply returns a copy of r with the patch applied.
func (p RulePatch) Apply(r Rule) Rule {
	out := r.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Conditions != nil {
		out.Conditions = Rule{Conditions: p.Conditions}.Clone().Conditions
	}
	if p.Severity != nil {
		out.Severity = *p.Severity
	}
	if p.Action != nil {
		out.Action = *p.Action
	}
	if p.Source != nil {
		out.Source = *p.Source
	}
	if p.Message != nil {
		out.Message = *p.Message
	}
	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p RulePatch) IsEmpty() bool {
	return p.Name == nil && p.Conditions == nil && p.Severity == nil && p.Action == nil &&
		p.Source == nil && p.Message == nil && p.Enabled == nil
}

type RuleListOptions struct {
	Query  string
	Limit  int
	Offset int
}
