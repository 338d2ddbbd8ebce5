// Package querybuilder assembles parameterized SQL fragments from validated
// query intents. It never executes anything; repositories splice the
// fragments into their own statements.
//
// Fragments chain through ParamOffset: build the search clause first, then
// pass its ParamOffset as the filter clause's start index, so positional
// placeholders stay contiguous and never collide.
package querybuilder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/trossworks/trossd/internal/domain/query"
)

// Fragment is a partial WHERE clause with its bound parameters.
// ParamOffset is the running placeholder count: the next fragment's
// placeholders start at ParamOffset+1.
type Fragment struct {
	Clause      string
	Params      []any
	ParamOffset int
}

// SearchClause builds a case-insensitive substring match across all
// searchable columns, OR-joined and bound to one shared parameter:
//
//	(email ILIKE $1 OR first_name ILIKE $1)
//
// Returns nil when the term is empty or no columns are searchable; callers
// omit the clause entirely in that case.
func SearchClause(term string, searchable []string, start int) *Fragment {
	if term == "" || len(searchable) == 0 {
		return nil
	}

	placeholder := fmt.Sprintf("$%d", start+1)
	parts := make([]string, len(searchable))
	for i, col := range searchable {
		parts[i] = col + " ILIKE " + placeholder
	}

	return &Fragment{
		Clause:      "(" + strings.Join(parts, " OR ") + ")",
		Params:      []any{"%" + term + "%"},
		ParamOffset: start + 1,
	}
}

// FilterClause builds an AND-joined group of comparisons for the given
// filters. Columns outside the metadata allow-list and operators outside
// the closed Op set are silently dropped: the validators upstream already
// rejected anything hostile, and this keeps the builder safe when called
// directly. Columns are emitted in sorted order so the clause is
// deterministic. Returns nil when nothing survives.
func FilterClause(filters map[string]query.Filter, md query.Metadata, start int) *Fragment {
	if len(filters) == 0 {
		return nil
	}

	var parts []string
	var params []any
	n := start

	for _, col := range filterColumns(filters, md) {
		f := filters[col]
		op := f.Op
		if op == "" {
			op = query.OpEq
		}
		if !op.IsValid() {
			continue
		}
		n++
		parts = append(parts, fmt.Sprintf("%s %s $%d", col, op.Symbol(), n))
		params = append(params, f.Value)
	}

	if len(parts) == 0 {
		return nil
	}
	return &Fragment{
		Clause:      strings.Join(parts, " AND "),
		Params:      params,
		ParamOffset: n,
	}
}

// SortClause builds the ORDER BY body. The column is interpolated as a
// literal because identifiers cannot be bound as parameters; the metadata
// membership check is the injection defense here. Anything outside the
// allow-list, and any order other than asc/desc, falls back to the entity
// default.
func SortClause(sortBy string, sortOrder query.Order, md query.Metadata) string {
	def := md.DefaultSort()
	col := def.Field
	if sortBy != "" && md.IsSortable(sortBy) {
		col = sortBy
	}
	order := def.Order
	if sortOrder.IsValid() {
		order = sortOrder
	}
	return col + " " + order.SQL()
}

// filterColumns returns the filter keys that pass the allow-list, sorted.
func filterColumns(filters map[string]query.Filter, md query.Metadata) []string {
	cols := make([]string, 0, len(filters))
	for col := range filters {
		if md.IsFilterable(col) {
			cols = append(cols, col)
		}
	}
	// Metadata holds filterable fields in a map, so impose a stable order.
	slices.Sort(cols)
	return cols
}
