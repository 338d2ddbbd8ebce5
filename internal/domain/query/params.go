package query

// Filter is one validated filter condition on a column.
type Filter struct {
	Op    Op
	Value any
}

// Eq creates a plain equality filter.
func Eq(value any) Filter { return Filter{Op: OpEq, Value: value} }

// Params carries the validated list-query intents for one request. A zero
// Search means "not searching"; SortBy/SortOrder are empty when the caller
// wants the entity default.
type Params struct {
	Search    string
	Filters   map[string]Filter
	SortBy    string
	SortOrder Order
}

// WithFilter returns a copy of p with an additional filter set. Used by
// handlers to pin server-side predicates next to client-supplied ones.
func (p Params) WithFilter(field string, f Filter) Params {
	filters := make(map[string]Filter, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[field] = f
	p.Filters = filters
	return p
}
