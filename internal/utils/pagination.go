// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationParams is the 1-based page/limit pair used by admin listings.
type PaginationParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

// Pagination is the metadata block returned with every paged listing.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

// Offset is the number of rows skipped before the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total / size). A non-positive size yields zero pages.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

func SetPaginationHeaders(c *gin.Context, p Pagination) {
	c.Header("X-Total-Count", strconv.FormatInt(p.TotalItems, 10))
	c.Header("X-Page", strconv.Itoa(p.Page))
	c.Header("X-Total-Pages", strconv.Itoa(p.TotalPages))
}
