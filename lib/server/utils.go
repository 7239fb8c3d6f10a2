package server

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/utils"
)

type GridParams struct {
	Sort   string `form:"sort"`
	Asc    *bool  `form:"asc"`
	Offset *int   `form:"offset"`
	Limit  *int   `form:"limit"`
}

var errorNotFound error

func init() {
	errorNotFound = fmt.Errorf("not found")
}

type httpError struct {
	status int
	body   gin.H
}

func (e *httpError) Error() string {
	return fmt.Sprintf("http %v", e.status)
}

func sendError(c *gin.Context, err error) {
	var he *httpError

	switch {
	case err == errorNotFound:
		c.String(http.StatusNotFound, "")
	case errors.As(err, &he):
		c.JSON(he.status, he.body)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func get(f func() (any, error)) func(c *gin.Context) {
	return func(c *gin.Context) {
		result, err := f()
		if err != nil {
			sendError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func getP[P any](f func(*gin.Context, *P) (any, error)) func(c *gin.Context) {
	return func(c *gin.Context) {
		var params P

		err := c.ShouldBindQuery(&params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := f(c, &params)
		if err != nil {
			sendError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func sortBy[T any, R constraints.Ordered](col []T, get func(T) R, asc bool) {
	if asc {
		sort.Slice(col, func(i, j int) bool {
			return get(col[i]) <= get(col[j])
		})
	} else {
		sort.Slice(col, func(i, j int) bool {
			return get(col[i]) >= get(col[j])
		})
	}
}

func paginate[T any](col []T, offset, limit *int) []T {
	if offset != nil {
		if *offset > len(col) {
			return []T{}
		}

		col = col[*offset:]
	}

	if limit != nil && *limit < len(col) {
		col = col[:*limit]
	}

	return col
}

func encodeMetric(v int) *int {
	return utils.IIf(v == -1, nil, &v)
}

func toBlame(i *model.Blame) gin.H {
	return gin.H{
		"total":   encodeMetric(i.Total()),
		"code":    encodeMetric(i.Code),
		"comment": encodeMetric(i.Comment),
		"blank":   encodeMetric(i.Blank),
	}
}
