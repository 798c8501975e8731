// controller/dashboard_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/util"
	helper_util "github.com/abhiraj070/RuleMind/util/helper"
)

type DashboardController struct {
	dashboardService service.IDashboardService
}

func NewDashboardController(dashboardService service.IDashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DashboardController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/summary", dc.Summary)
}

// Summary endpoint
func (dc *DashboardController) Summary(c *gin.Context) {
	from, to, err := helper_util.ParseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		util.RespondWithServiceError(c, "Invalid time range", err)
		return
	}

	summary, err := dc.dashboardService.Summary(c.Request.Context(), from, to)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to build dashboard summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
