package helper_util_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	helper_util "github.com/abhiraj070/RuleMind/util/helper"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
		err    bool
	}{
		{"", helper_util.DefaultPageLimit, 0, false},
		{"limit=10&offset=20", 10, 20, false},
		{"limit=0", helper_util.DefaultPageLimit, 0, false},
		{"limit=100000", helper_util.MaxPageLimit, 0, false},
		{"limit=-1", 0, 0, true},
		{"offset=-5", 0, 0, true},
		{"limit=ten", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			limit, offset, err := helper_util.GetPaginationParams(contextWithQuery(tt.query))
			if tt.err {
				assert.ErrorIs(t, err, rm_errors.ErrInvalidPagination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	from, to, err := helper_util.ParseTimeRange("2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC), to)

	from, to, err = helper_util.ParseTimeRange("2026-03-01T10:00:00+05:30", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 4, 30, 0, 0, time.UTC), from)
	assert.True(t, to.IsZero())

	_, _, err = helper_util.ParseTimeRange("2026-03-02", "2026-03-01")
	assert.ErrorIs(t, err, rm_errors.ErrValidation)

	_, _, err = helper_util.ParseTimeRange("last week", "")
	assert.ErrorIs(t, err, rm_errors.ErrValidation)
}
