// Package validation provides chi-style middleware that coerces and
// validates path and query parameters before handlers run. Validated values
// accumulate in a per-request Container; a failed check short-circuits the
// chain with a uniform 400 envelope and never reaches the handler.
package validation

import (
	"context"
	"net/http"

	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
)

type ctxKey struct{}

// Container accumulates the validated inputs of one request. It is created
// lazily by the first validator in the chain and reused, never replaced, by
// the rest; the request goroutine is its only owner, so there is no locking.
type Container struct {
	params     map[string]int64
	legacyID   int64
	slugs      map[string]string
	pagination *page.Request
	search     string
	hasSearch  bool
	filters    map[string]query.Filter
	sortBy     string
	sortOrder  query.Order
}

// FromContext returns the request's validated-data container, or nil when no
// validator has run.
func FromContext(ctx context.Context) *Container {
	c, _ := ctx.Value(ctxKey{}).(*Container)
	return c
}

// container returns the request's Container, attaching a fresh one to the
// request context on first touch.
func container(r *http.Request) (*Container, *http.Request) {
	if c := FromContext(r.Context()); c != nil {
		return c, r
	}
	c := &Container{}
	return c, r.WithContext(context.WithValue(r.Context(), ctxKey{}, c))
}

// Param returns a validated integer path parameter by name.
func (c *Container) Param(name string) (int64, bool) {
	v, ok := c.params[name]
	return v, ok
}

// ID returns the validated "id" path parameter. When the route names its
// parameter differently, it returns the last id-validated parameter;
// older handlers depend on this shortcut.
func (c *Container) ID() int64 {
	if v, ok := c.params["id"]; ok {
		return v
	}
	return c.legacyID
}

// Slug returns a validated slug path parameter by name.
func (c *Container) Slug(name string) (string, bool) {
	v, ok := c.slugs[name]
	return v, ok
}

// Pagination returns the validated pagination request, falling back to the
// package defaults when no pagination validator ran.
func (c *Container) Pagination() page.Request {
	if c == nil || c.pagination == nil {
		return page.New(1, page.DefaultLimit)
	}
	return *c.pagination
}

// Search returns the validated search term and whether one was supplied.
func (c *Container) Search() (string, bool) { return c.search, c.hasSearch }

// QueryParams bundles the validated list-query intents for the repository.
func (c *Container) QueryParams() query.Params {
	if c == nil {
		return query.Params{}
	}
	return query.Params{
		Search:    c.search,
		Filters:   c.filters,
		SortBy:    c.sortBy,
		SortOrder: c.sortOrder,
	}
}

func (c *Container) setParam(name string, v int64) {
	if c.params == nil {
		c.params = make(map[string]int64)
	}
	c.params[name] = v
}

func (c *Container) setSlug(name, v string) {
	if c.slugs == nil {
		c.slugs = make(map[string]string)
	}
	c.slugs[name] = v
}

func (c *Container) setFilter(field string, f query.Filter) {
	if c.filters == nil {
		c.filters = make(map[string]query.Filter)
	}
	c.filters[field] = f
}
