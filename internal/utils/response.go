package utils

import (
	"github.com/gin-gonic/gin"
)

// Pagination holds pagination metadata for public list responses.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPagination computes pagination metadata from page, limit and total count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}
}

// Data writes a success body wrapped in the public {data: ...} envelope.
func Data(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{"data": data})
}

// DataWithPagination writes a list body with pagination metadata.
func DataWithPagination(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(200, gin.H{"data": data, "pagination": p})
}

// Fail writes an error body in the public {error: ...} shape and aborts
// any remaining handlers.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
