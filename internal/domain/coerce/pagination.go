package coerce

import (
	"net/url"

	"github.com/trossworks/trossd/internal/domain/page"
)

// PageOptions controls Pagination coercion. Zero values fall back to the
// package defaults in page.
type PageOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// Pagination reads "page" and "limit" from a query string and returns a
// validated pagination request with the offset derived.
func Pagination(q url.Values, opts PageOptions) (page.Request, error) {
	defaultLimit := opts.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = page.DefaultLimit
	}
	maxLimit := opts.MaxLimit
	if maxLimit <= 0 {
		maxLimit = page.MaxLimit
	}

	pageNum := int64(1)
	if p, err := Integer(q.Get("page"), "page", IntOptions{Min: 1, AllowNull: true}); err != nil {
		return page.Request{}, err
	} else if p != nil {
		pageNum = *p
	}

	limit := int64(defaultLimit)
	if l, err := Integer(q.Get("limit"), "limit", IntOptions{Min: 1, Max: int64(maxLimit), AllowNull: true}); err != nil {
		return page.Request{}, err
	} else if l != nil {
		limit = *l
	}

	return page.New(int(pageNum), int(limit)), nil
}
