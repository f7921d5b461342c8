package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON wrapper used by every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Errors     any         `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes an offset-paginated listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes total pages as ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Success writes a success envelope with the given status.
func Success(c *gin.Context, status int, message string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Paginated writes a success envelope carrying pagination metadata.
func Paginated(c *gin.Context, message string, data any, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: p})
}

// Error writes a failure envelope with the given status and aborts the chain.
func Error(c *gin.Context, status int, message string, errs any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Errors: errs})
}
