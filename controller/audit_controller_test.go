// controller/audit_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/abhiraj070/RuleMind/controller"
	rm_errors "github.com/abhiraj070/RuleMind/errors"
	"github.com/abhiraj070/RuleMind/model"
	mock_service "github.com/abhiraj070/RuleMind/test/service_mock"
)

func TestAuditController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuditService := mock_service.NewMockIAuditService(ctrl)
	mockDashboardService := mock_service.NewMockIDashboardService(ctrl)
	router := setupRouter()
	api := router.Group("/")
	controller.NewAuditController(mockAuditService).RegisterRoutes(api)
	controller.NewDashboardController(mockDashboardService).RegisterRoutes(api)

	t.Run("ListEntries_Success", func(t *testing.T) {
		expected := model.AuditFilter{
			TransactionID: "TXN-A",
			RuleID:        "RULE-001",
			Result:        model.VerdictFail,
			From:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			To:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		}
		mockAuditService.EXPECT().
			ListEntries(gomock.Any(), expected, 20, 40).
			Return(&model.AuditPage{Entries: []model.AuditEntry{}, Limit: 20, Offset: 40}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit?transactionId=TXN-A&ruleId=RULE-001&result=fail&from=2026-03-01&to=2026-03-01&limit=20&offset=40", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"entries":[],"limit":20,"offset":40,"hasMore":false}`, w.Body.String())
	})

	t.Run("ListEntries_Failure_TimeRange", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit?from=2026-03-02&to=2026-03-01", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListEntries_Failure_Storage", func(t *testing.T) {
		mockAuditService.EXPECT().
			ListEntries(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, rm_errors.ErrStorage)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("GetEntry_Success", func(t *testing.T) {
		mockAuditService.EXPECT().
			GetEntry(gomock.Any(), "audit-1").
			Return(&model.AuditEntry{ID: "audit-1"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/audit-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetEntry_Failure_NotFound", func(t *testing.T) {
		mockAuditService.EXPECT().
			GetEntry(gomock.Any(), gomock.Any()).
			Return(nil, rm_errors.ErrAuditEntryNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/audit-404", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DashboardSummary_Success", func(t *testing.T) {
		mockDashboardService.EXPECT().
			Summary(gomock.Any(), time.Time{}, time.Time{}).
			Return(&model.DashboardSummary{TotalEvaluations: 4, Passed: 3, ComplianceRate: 75}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dashboard/summary", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"complianceRate":75`)
	})

	t.Run("DashboardSummary_Failure_BadDate", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dashboard/summary?from=yesterday", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
