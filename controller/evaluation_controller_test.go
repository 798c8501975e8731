// controller/evaluation_controller_test.go
package controller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abhiraj070/RuleMind/controller"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	mock_service "github.com/abhiraj070/RuleMind/test/service_mock"
)

func TestEvaluationController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockComplianceService := mock_service.NewMockIComplianceService(ctrl)
	evaluationController := controller.NewEvaluationController(mockComplianceService)
	router := setupRouter()
	api := router.Group("/")
	evaluationController.RegisterRoutes(api)

	evaluatedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Evaluate_Success", func(t *testing.T) {
		mockComplianceService.EXPECT().
			Evaluate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, tx model.Transaction) (*model.AuditEntry, error) {
				assert.Equal(t, model.FlexString("2500000"), tx.Amount)
				return &model.AuditEntry{
					ID: "audit-1",
					EvaluationResult: model.EvaluationResult{
						TransactionID: "TXN-A",
						Status:        model.VerdictFail,
						Message:       "Transaction blocked: Missing PAN for high-value transaction",
						TriggeredRules: []model.TriggeredRule{
							{RuleID: "RULE-001", Name: "Large Cash", Severity: model.SeverityCritical, Action: model.ActionBlock},
						},
						EvaluatedAt: evaluatedAt,
					},
				}, nil
			})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/evaluate", strings.NewReader(`{"transactionId":"TXN-A","amount":2500000}`))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "TXN-A", resp["transactionId"])
		assert.Equal(t, "fail", resp["status"])
		assert.Equal(t, "audit-1", resp["auditId"])
		assert.Equal(t, "2026-03-01T09:30:00Z", resp["evaluatedAt"])
		assert.Len(t, resp["triggeredRules"], 1)
	})

	t.Run("Evaluate_Failure_BadJSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/evaluate", strings.NewReader(`{"amount":{}}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"MalformedInput", &rm_errors.MalformedInputError{Field: "amount", Value: "ten lakh"}, http.StatusUnprocessableEntity, rm_errors.CodeMalformedInput},
		{"Evaluation", &rm_errors.EvaluationError{RuleID: "RULE-009", Field: "amount", Err: rm_errors.ErrInvalidCondition}, http.StatusUnprocessableEntity, rm_errors.CodeEvaluation},
		{"AuditWrite", fmt.Errorf("%w: %w", rm_errors.ErrAuditWrite, rm_errors.ErrStorage), http.StatusServiceUnavailable, rm_errors.CodeAuditWrite},
	}
	for _, tc := range cases {
		t.Run("Evaluate_Failure_"+tc.name, func(t *testing.T) {
			mockComplianceService.EXPECT().
				Evaluate(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/evaluate", strings.NewReader(`{"amount":"ten lakh"}`))
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			detail := decodeError(t, w)
			assert.Equal(t, tc.code, detail.Code)
			assert.NotContains(t, w.Body.String(), `"status"`)
		})
	}
}
