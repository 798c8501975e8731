package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhiraj070/RuleMind/metrics"
	"github.com/abhiraj070/RuleMind/model"
)

func TestRecordEvaluation(t *testing.T) {
	m := metrics.NewMetricsCollector()

	m.RecordEvaluation(10*time.Millisecond, model.EvaluationResult{
		Status: model.VerdictFail,
		TriggeredRules: []model.TriggeredRule{
			{RuleID: "RULE-003", Action: model.ActionBlock},
		},
	})
	m.RecordEvaluation(5*time.Millisecond, model.EvaluationResult{Status: model.VerdictPass})
	m.RecordEvaluationError(time.Millisecond, "MALFORMED_INPUT")

	expected := `
# HELP rulemind_evaluations_total Completed evaluations by verdict
# TYPE rulemind_evaluations_total counter
rulemind_evaluations_total{verdict="fail"} 1
rulemind_evaluations_total{verdict="pass"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "rulemind_evaluations_total"))

	count, err := testutil.GatherAndCount(m.Registry(), "rulemind_rule_triggers_total", "rulemind_evaluation_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetHandler(t *testing.T) {
	m := metrics.NewMetricsCollector()
	m.RecordRuleChange("created")

	w := httptest.NewRecorder()
	m.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rulemind_rule_changes_total{change="created"} 1`)
}
