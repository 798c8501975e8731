// service/dashboard_service.go
package service

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/abhiraj070/RuleMind/audit"
	"github.com/abhiraj070/RuleMind/model"
)

const recentFailuresShown = 5

// IDashboardService summarizes audit history.
type IDashboardService interface {
	Summary(ctx context.Context, from, to time.Time) (*model.DashboardSummary, error)
}

type DashboardService struct {
	sink audit.Service
}

var _ IDashboardService = &DashboardService{}

func NewDashboardService(sink audit.Service) *DashboardService {
	return &DashboardService{sink: sink}
}

// Summary streams every audit entry in the range once. Violations are
// counted per triggered rule, most frequent first.
func (s *DashboardService) Summary(ctx context.Context, from, to time.Time) (*model.DashboardSummary, error) {
	summary := &model.DashboardSummary{
		ViolationsByRule: []model.RuleViolation{},
		RecentFailures:   []model.AuditEntry{},
	}
	violations := map[string]*model.RuleViolation{}

	for entry, err := range s.sink.Query(ctx, model.AuditFilter{From: from, To: to}) {
		if err != nil {
			return nil, err
		}
		summary.TotalEvaluations++
		switch entry.Status {
		case model.VerdictPass:
			summary.Passed++
		case model.VerdictWarning:
			summary.Warnings++
		case model.VerdictFail:
			summary.Failed++
			if len(summary.RecentFailures) < recentFailuresShown {
				summary.RecentFailures = append(summary.RecentFailures, entry)
			}
		}
		for _, t := range entry.TriggeredRules {
			v, ok := violations[t.RuleID]
			if !ok {
				v = &model.RuleViolation{RuleID: t.RuleID, Name: t.Name, Severity: t.Severity}
				violations[t.RuleID] = v
			}
			v.Count++
		}
	}

	if summary.TotalEvaluations > 0 {
		rate := float64(summary.Passed) / float64(summary.TotalEvaluations) * 100
		summary.ComplianceRate = math.Round(rate*10) / 10
	}
	for _, v := range violations {
		summary.ViolationsByRule = append(summary.ViolationsByRule, *v)
	}
	slices.SortFunc(summary.ViolationsByRule, func(a, b model.RuleViolation) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})
	return summary, nil
}
