package store

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination describes the page of results returned by a list call.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListQuery carries the shared pagination, sorting and search parameters.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

func (q ListQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// orderClause builds an ORDER BY expression from a whitelist of sortable
// columns. Unknown sort keys fall back to the default so client input
// never reaches the SQL text.
func (q ListQuery) orderClause(sortable map[string]string, fallback string) string {
	column, ok := sortable[q.SortBy]
	if !ok {
		column = fallback
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func newPagination(q ListQuery, total int64) Pagination {
	return Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}
