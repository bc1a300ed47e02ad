package helpers

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*limit inside an int32 row offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// Pagination is the listing metadata returned next to paged results.
type Pagination struct {
	Current        int `json:"current"`
	TotalPages     int `json:"totalPages"`
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// ParsePage reads 1-based page and limit query values. Missing or invalid
// values fall back to page 1 and DefaultPageSize; limit is capped at MaxPageSize
// and page at MaxPage.
func ParsePage(pageStr, limitStr string) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return (page - 1) * limit
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Current: page, TotalPages: pages, TotalResults: total, ResultsPerPage: limit}
}
