package query

import (
	"fmt"
	"slices"
)

// Order is a sort direction, stored normalized to lowercase.
type Order string

// Sort order constants.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// IsValid checks if the order is asc or desc.
func (o Order) IsValid() bool { return o == Asc || o == Desc }

// SQL returns the uppercase SQL keyword for the order.
func (o Order) SQL() string {
	if o == Desc {
		return "DESC"
	}
	return "ASC"
}

// DefaultSort is the fallback ordering applied when a request names no sort
// field, or names one outside the allow-list.
type DefaultSort struct {
	Field string
	Order Order
}

// Metadata is the per-entity allow-list: which columns may be searched,
// filtered, and sorted, and how filter values are typed. It is the central
// injection defense; column identifiers never reach SQL without passing a
// membership check here.
type Metadata struct {
	searchable []string
	filterable map[string]FieldType
	sortable   []string
	defaults   DefaultSort
}

// NewMetadata validates and creates entity query metadata. The sortable set
// must be non-empty and contain the default sort field; both are programmer
// errors surfaced at startup, not at request time.
func NewMetadata(searchable []string, filterable map[string]FieldType, sortable []string, defaults DefaultSort) (Metadata, error) {
	if len(sortable) == 0 {
		return Metadata{}, fmt.Errorf("sortable field list is required")
	}
	if !slices.Contains(sortable, defaults.Field) {
		return Metadata{}, fmt.Errorf("default sort field %q is not sortable", defaults.Field)
	}
	if !defaults.Order.IsValid() {
		return Metadata{}, fmt.Errorf("default sort order %q is not asc or desc", defaults.Order)
	}
	for name, ft := range filterable {
		if !ft.IsValid() {
			return Metadata{}, fmt.Errorf("filterable field %q has unknown type %q", name, ft)
		}
	}
	return Metadata{
		searchable: slices.Clone(searchable),
		filterable: filterable,
		sortable:   slices.Clone(sortable),
		defaults:   defaults,
	}, nil
}

// MustMetadata creates metadata or panics. For the composition root, where
// the inputs are compile-time constants.
func MustMetadata(searchable []string, filterable map[string]FieldType, sortable []string, defaults DefaultSort) Metadata {
	md, err := NewMetadata(searchable, filterable, sortable, defaults)
	if err != nil {
		panic(err)
	}
	return md
}

// Searchable returns the searchable columns in declaration order.
func (m Metadata) Searchable() []string { return m.searchable }

// Sortable returns the sortable columns in declaration order.
func (m Metadata) Sortable() []string { return m.sortable }

// DefaultSort returns the fallback ordering.
func (m Metadata) DefaultSort() DefaultSort { return m.defaults }

// FilterType looks up the declared type of a filterable column.
func (m Metadata) FilterType(field string) (FieldType, bool) {
	ft, ok := m.filterable[field]
	return ft, ok
}

// IsFilterable reports whether the column accepts filters.
func (m Metadata) IsFilterable(field string) bool {
	_, ok := m.filterable[field]
	return ok
}

// IsSortable reports whether the column accepts sorting.
func (m Metadata) IsSortable(field string) bool {
	return slices.Contains(m.sortable, field)
}
