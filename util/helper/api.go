package helper_util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// GetPaginationParams reads limit and offset query parameters. Missing
// values fall back to the defaults; negative or non-numeric values fail with
// ErrInvalidPagination.
func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 0 {
		return 0, 0, fmt.Errorf("%w: limit %q", rm_errors.ErrInvalidPagination, c.Query("limit"))
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset %q", rm_errors.ErrInvalidPagination, c.Query("offset"))
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	return min(limit, MaxPageLimit), offset, nil
}
