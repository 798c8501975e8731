// controller/audit_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/util"
	helper_util "github.com/abhiraj070/RuleMind/util/helper"
)

type AuditController struct {
	auditService service.IAuditService
}

func NewAuditController(auditService service.IAuditService) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	entries := r.Group("/audit")
	{
		entries.GET("", ac.ListEntries)
		entries.GET("/:id", ac.GetEntry)
	}
}

// ListEntries endpoint. Entries come back newest first.
func (ac *AuditController) ListEntries(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithServiceError(c, "Invalid pagination parameters", err)
		return
	}
	from, to, err := helper_util.ParseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		util.RespondWithServiceError(c, "Invalid time range", err)
		return
	}

	filter := model.AuditFilter{
		TransactionID: c.Query("transactionId"),
		RuleID:        c.Query("ruleId"),
		Result:        model.Verdict(c.Query("result")),
		From:          from,
		To:            to,
	}

	page, err := ac.auditService.ListEntries(c.Request.Context(), filter, limit, offset)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to query audit trail", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetEntry endpoint
func (ac *AuditController) GetEntry(c *gin.Context) {
	entry, err := ac.auditService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondWithServiceError(c, "Failed to retrieve audit entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
