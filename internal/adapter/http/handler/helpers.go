package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/newsverdict/verdict/internal/usecase"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset from the query string. Missing,
// malformed or out-of-range values fall back to the history defaults.
func ParsePagination(c *gin.Context) *PaginationParams {
	limit := queryInt(c, "limit", usecase.DefaultHistoryLimit)
	if limit < 1 {
		limit = usecase.DefaultHistoryLimit
	}

	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	return &PaginationParams{
		Limit:  min(limit, usecase.MaxHistoryLimit),
		Offset: offset,
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
