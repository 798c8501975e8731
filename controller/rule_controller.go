// controller/rule_controller.go
package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	"github.com/abhiraj070/RuleMind/service"
	"github.com/abhiraj070/RuleMind/util"
	helper_util "github.com/abhiraj070/RuleMind/util/helper"
)

type RuleController struct {
	ruleService service.IRuleService
}

func NewRuleController(ruleService service.IRuleService) *RuleController {
	return &RuleController{
		ruleService: ruleService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RuleController) RegisterRoutes(r *gin.RouterGroup) {
	rules := r.Group("/rules")
	{
		rules.POST("", rc.CreateRule)
		rules.POST("/bulk", rc.BulkCreateRules)
		rules.GET("", rc.ListRules)
		rules.GET("/:id", rc.GetRule)
		rules.PATCH("/:id", rc.UpdateRule)
		rules.POST("/:id/toggle", rc.ToggleRule)
	}
}

// conditionShorthand lets a single-condition rule be written inline.
type conditionShorthand struct {
	Field    string           `json:"field"`
	Operator model.Operator   `json:"operator"`
	Value    model.FlexString `json:"value"`
	Values   []string         `json:"values"`
}

func (s conditionShorthand) isSet() bool {
	return s.Field != "" || s.Operator != "" || s.Value != "" || len(s.Values) > 0
}

func (s conditionShorthand) condition() model.Condition {
	return model.Condition{Field: s.Field, Operator: s.Operator, Value: s.Value, Values: s.Values}
}

type createRuleRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Conditions []model.Condition `json:"conditions"`
	conditionShorthand
	Severity model.Severity `json:"severity"`
	Action   model.Action   `json:"action"`
	Source   string         `json:"source"`
	Message  string         `json:"message"`
	Enabled  *bool          `json:"enabled"`
}

// toRule builds the rule definition. New rules are enabled unless the
// request says otherwise.
func (req createRuleRequest) toRule() (model.Rule, error) {
	rule := model.Rule{
		ID:         req.ID,
		Name:       req.Name,
		Conditions: req.Conditions,
		Severity:   req.Severity,
		Action:     req.Action,
		Source:     req.Source,
		Message:    req.Message,
		Enabled:    true,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if req.conditionShorthand.isSet() {
		if len(req.Conditions) > 0 {
			return model.Rule{}, fmt.Errorf("%w: give either field/operator or conditions, not both", rm_errors.ErrValidation)
		}
		rule.Conditions = []model.Condition{req.conditionShorthand.condition()}
	}
	return rule, nil
}

type updateRuleRequest struct {
	model.RulePatch
	conditionShorthand
}

func (req updateRuleRequest) toPatch() (model.RulePatch, error) {
	patch := req.RulePatch
	if req.conditionShorthand.isSet() {
		if patch.Conditions != nil {
			return model.RulePatch{}, fmt.Errorf("%w: give either field/operator or conditions, not both", rm_errors.ErrValidation)
		}
		patch.Conditions = []model.Condition{req.conditionShorthand.condition()}
	}
	return patch, nil
}

type toggleRuleRequest struct {
	Enabled *bool `json:"enabled"`
}

type bulkCreateResponse struct {
	RuleIDs []string `json:"ruleIds"`
}

// CreateRule endpoint
func (rc *RuleController) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, rm_errors.CodeValidation, "Invalid rule data", err)
		return
	}
	rule, err := req.toRule()
	if err != nil {
		util.RespondWithServiceError(c, "Invalid rule data", err)
		return
	}

	created, err := rc.ruleService.CreateRule(c.Request.Context(), rule)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to create rule", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// BulkCreateRules endpoint
func (rc *RuleController) BulkCreateRules(c *gin.Context) {
	var reqs []createRuleRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, rm_errors.CodeValidation, "Invalid rule data", err)
		return
	}
	rules := make([]model.Rule, 0, len(reqs))
	for i, req := range reqs {
		rule, err := req.toRule()
		if err != nil {
			util.RespondWithServiceError(c, fmt.Sprintf("Invalid rule %d", i+1), err)
			return
		}
		rules = append(rules, rule)
	}

	ruleIDs, err := rc.ruleService.BulkCreateRules(c.Request.Context(), rules)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to bulk create rules", err)
		return
	}

	c.JSON(http.StatusCreated, bulkCreateResponse{RuleIDs: ruleIDs})
}

// UpdateRule endpoint
func (rc *RuleController) UpdateRule(c *gin.Context) {
	ruleID := c.Param("id")
	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, rm_errors.CodeValidation, "Invalid rule data", err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		util.RespondWithServiceError(c, "Invalid rule data", err)
		return
	}

	updated, err := rc.ruleService.UpdateRule(c.Request.Context(), ruleID, patch)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to update rule", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ToggleRule endpoint. Without a body the enabled flag is flipped.
func (rc *RuleController) ToggleRule(c *gin.Context) {
	ruleID := c.Param("id")
	var req toggleRuleRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			util.RespondWithError(c, http.StatusBadRequest, rm_errors.CodeValidation, "Invalid toggle data", err)
			return
		}
	}

	toggled, err := rc.ruleService.ToggleRule(c.Request.Context(), ruleID, req.Enabled)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to toggle rule", err)
		return
	}

	c.JSON(http.StatusOK, toggled)
}

// GetRule endpoint
func (rc *RuleController) GetRule(c *gin.Context) {
	ruleID := c.Param("id")

	rule, err := rc.ruleService.GetRule(c.Request.Context(), ruleID)
	if err != nil {
		util.RespondWithServiceError(c, "Failed to retrieve rule", err)
		return
	}

	c.JSON(http.StatusOK, rule)
}

// ListRules endpoint
func (rc *RuleController) ListRules(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithServiceError(c, "Invalid pagination parameters", err)
		return
	}

	rules, err := rc.ruleService.ListRules(c.Request.Context(), model.RuleListOptions{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		util.RespondWithServiceError(c, "Failed to list rules", err)
		return
	}
	if rules == nil {
		rules = []model.Rule{}
	}

	c.JSON(http.StatusOK, rules)
}
