// service/services.go
package service

import (
	"github.com/abhiraj070/RuleMind/audit"
	"github.com/abhiraj070/RuleMind/dao"
	"github.com/abhiraj070/RuleMind/metrics"
	"github.com/abhiraj070/RuleMind/pdp/engine"
	"github.com/abhiraj070/RuleMind/util"
)

type Services struct {
	Rule       IRuleService
	Compliance IComplianceService
	Audit      IAuditService
	Dashboard  IDashboardService
}

// InitializeServices wires the services over a rule store and an audit
// sink. The rule engine reads rules through the rule service so evaluations
// share its snapshot cache.
func InitializeServices(
	ruleDAO dao.RuleStore,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService RuleCache,
	eventBus *util.EventBus,
	collector *metrics.MetricsCollector,
) *Services {
	ruleService := NewRuleService(ruleDAO, validationUtil, cacheService, eventBus, collector)
	ruleEngine := engine.NewRuleEngine(ruleService, auditService)

	return &Services{
		Rule:       ruleService,
		Compliance: NewComplianceService(ruleEngine, eventBus, collector),
		Audit:      NewAuditService(auditService),
		Dashboard:  NewDashboardService(auditService),
	}
}
