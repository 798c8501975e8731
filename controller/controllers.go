// controller/controllers.go
package controller

import "github.com/abhiraj070/RuleMind/service"

type Controllers struct {
	Rule       *RuleController
	Evaluation *EvaluationController
	Audit      *AuditController
	Dashboard  *DashboardController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Rule:       NewRuleController(services.Rule),
		Evaluation: NewEvaluationController(services.Compliance),
		Audit:      NewAuditController(services.Audit),
		Dashboard:  NewDashboardController(services.Dashboard),
	}
}
