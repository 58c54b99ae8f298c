package db

// Pagination defaults and bounds. The limit ceiling is deliberate:
// page and limit are caller-controlled and an unbounded limit would
// allow arbitrarily large result sets.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest holds normalized pagination parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps raw page/limit values into a valid request.
// Non-positive values fall back to the defaults; limit is capped at MaxLimit.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata attached to every list response.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
}

// NewPagination computes page metadata for a total row count.
// An empty result set reports zero total pages, not an error.
func NewPagination(req PageRequest, total int64) Pagination {
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
}
