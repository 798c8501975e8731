// controller/evaluation_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/util"
)

type EvaluationController struct {
	complianceService service.IComplianceService
}

func NewEvaluationController(complianceService service.IComplianceService) *EvaluationController {
	return &EvaluationController{
		complianceService: complianceService,
	}
}

// RegisterRoutes registers the API routes
func (ec *EvaluationController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/evaluate", ec.Evaluate)
}

type evaluationResponse struct {
	TransactionID  string                `json:"transactionId"`
	Status         model.Verdict         `json:"status"`
	Message        string                `json:"message"`
	TriggeredRules []model.TriggeredRule `json:"triggeredRules"`
	EvaluatedAt    time.Time             `json:"evaluatedAt"`
	AuditID        string                `json:"auditId"`
}

// Evaluate endpoint. A verdict is only returned once its audit entry is
// stored.
func (ec *EvaluationController) Evaluate(c *gin.Context) {
	var tx model.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, rm_errors.CodeValidation, "Invalid transaction data", err)
		return
	}

	entry, err := ec.complianceService.Evaluate(c.Request.Context(), tx)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to evaluate transaction", err)
		return
	}

	c.JSON(http.StatusOK, evaluationResponse{
		TransactionID:  entry.TransactionID,
		Status:         entry.Status,
		Message:        entry.Message,
		TriggeredRules: entry.TriggeredRules,
		EvaluatedAt:    entry.EvaluatedAt,
		AuditID:        entry.ID,
	})
}
