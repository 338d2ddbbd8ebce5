package validation

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/trossworks/trossd/internal/domain/coerce"
	"github.com/trossworks/trossd/internal/domain/query"
)

// PaginationOptions controls the Pagination middleware. Zero values mean
// limit default 50, max 500.
type PaginationOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// Pagination validates page/limit query parameters and stores the derived
// pagination request.
func Pagination(opts PaginationOptions) func(http.Handler) http.Handler {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 500
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pg, err := coerce.Pagination(r.URL.Query(), coerce.PageOptions{
				DefaultLimit: opts.DefaultLimit,
				MaxLimit:     opts.MaxLimit,
			})
			if err != nil {
				logFailure(r.Context(), "pagination", "pagination", r.URL.RawQuery, err.Error())
				RejectErr(w, "pagination", err)
				return
			}

			c, r := container(r)
			c.pagination = &pg
			logSuccess(r.Context(), "pagination", "pagination")
			next.ServeHTTP(w, r)
		})
	}
}

// SearchOptions controls the Search middleware. Zero MaxLength means 100.
type SearchOptions struct {
	MinLength int
	MaxLength int
	Required  bool
}

// Search validates the free-text search term, accepted under "search" or
// its alias "q". An absent optional term passes through untouched, so the
// container distinguishes "not searching" from a rejected search.
func Search(opts SearchOptions) func(http.Handler) http.Handler {
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = 100
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			term := strings.TrimSpace(searchTerm(r))
			if term == "" {
				if opts.Required {
					logFailure(r.Context(), "search", "search", term, "missing required search")
					Reject(w, "search", "Search query is required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if opts.MinLength > 0 && len(term) < opts.MinLength {
				msg := fmt.Sprintf("search must be at least %d characters", opts.MinLength)
				logFailure(r.Context(), "search", "search", term, msg)
				Reject(w, "search", msg)
				return
			}
			if len(term) > maxLen {
				msg := fmt.Sprintf("search cannot exceed %d characters", maxLen)
				logFailure(r.Context(), "search", "search", term, msg)
				Reject(w, "search", msg)
				return
			}

			c, r := container(r)
			c.search = term
			c.hasSearch = true
			logSuccess(r.Context(), "search", "search")
			next.ServeHTTP(w, r)
		})
	}
}

// Sort validates sortBy/sortOrder (and their sort/order aliases) against an
// allow-list. An empty allow-list is a programmer error and panics at route
// construction, so the bug surfaces in CI rather than as a request failure.
func Sort(allowed []string, defaultField string, defaultOrder query.Order) func(http.Handler) http.Handler {
	if len(allowed) == 0 {
		panic("validation.Sort: allowed field list must not be empty")
	}
	if defaultOrder == "" {
		defaultOrder = query.Asc
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sortBy, sortOrder, err := sortParams(r, allowed, defaultField, defaultOrder)
			if err != nil {
				logFailure(r.Context(), "sort", "sort", r.URL.RawQuery, err.Error())
				RejectErr(w, "sort", err)
				return
			}

			c, r := container(r)
			c.sortBy = sortBy
			c.sortOrder = sortOrder
			logSuccess(r.Context(), "sort", "sort")
			next.ServeHTTP(w, r)
		})
	}
}

// Filters validates an explicit filter schema: each declared query key is
// coerced per its field type, and string filters may be pinned to an
// enumerated value set. Absent optional filters are skipped.
func Filters(schema map[string]query.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			c, r := container(r)
			for field, rule := range schema {
				if !q.Has(field) {
					continue
				}
				raw := q.Get(field)
				v, err := rule.Type.Coerce(raw, field, rule)
				if err != nil {
					logFailure(r.Context(), "filters", field, raw, err.Error())
					RejectErr(w, field, err)
					return
				}
				if fmt.Sprintf("%v", v) != raw {
					logCoercion(r.Context(), field, raw, v)
				}
				c.setFilter(field, query.Eq(v))
			}
			logSuccess(r.Context(), "filters", "filters")
			next.ServeHTTP(w, r)
		})
	}
}

// Query is the composite validator used by entity list endpoints: search,
// filters (plain or bracket-operator form), and sort, all checked against
// the entity metadata. Unknown query keys are ignored for forward
// compatibility; known keys with bad values fail loudly.
func Query(md query.Metadata) func(http.Handler) http.Handler {
	const maxSearchLength = 200

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			c, r := container(r)

			// Search: empty after trim means "not searching", never an error.
			term := strings.TrimSpace(searchTerm(r))
			if len(term) > maxSearchLength {
				msg := fmt.Sprintf("search cannot exceed %d characters", maxSearchLength)
				logFailure(r.Context(), "query", "search", term, msg)
				Reject(w, "search", msg)
				return
			}
			if term != "" {
				c.search = term
				c.hasSearch = true
			}

			// Filters: field=value or field[op]=value against the allow-list.
			for key := range q {
				field, op, ok := filterKey(key, md)
				if !ok {
					continue
				}
				ft, _ := md.FilterType(field)
				raw := q.Get(key)
				v, err := ft.Coerce(raw, field, query.Rule{Type: ft})
				if err != nil {
					logFailure(r.Context(), "query", field, raw, err.Error())
					RejectErr(w, field, err)
					return
				}
				if fmt.Sprintf("%v", v) != raw {
					logCoercion(r.Context(), field, raw, v)
				}
				c.setFilter(field, query.Filter{Op: op, Value: v})
			}

			// Sort against the sortable allow-list, defaulting per metadata.
			def := md.DefaultSort()
			sortBy, sortOrder, err := sortParams(r, md.Sortable(), def.Field, def.Order)
			if err != nil {
				logFailure(r.Context(), "query", "sort", r.URL.RawQuery, err.Error())
				RejectErr(w, "sort", err)
				return
			}
			c.sortBy = sortBy
			c.sortOrder = sortOrder

			logSuccess(r.Context(), "query", "query")
			next.ServeHTTP(w, r)
		})
	}
}

// searchTerm reads the search parameter, preferring "search" over the "q"
// alias.
func searchTerm(r *http.Request) string {
	q := r.URL.Query()
	if v := q.Get("search"); v != "" {
		return v
	}
	return q.Get("q")
}

// sortParams reads and validates sortBy/sort and sortOrder/order.
func sortParams(r *http.Request, allowed []string, defaultField string, defaultOrder query.Order) (string, query.Order, error) {
	q := r.URL.Query()

	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = q.Get("sort")
	}
	if sortBy == "" {
		sortBy = defaultField
	} else if !slices.Contains(allowed, sortBy) {
		return "", "", &coerce.FieldError{
			Field:   "sortBy",
			Message: fmt.Sprintf("sortBy must be one of: %s", strings.Join(allowed, ", ")),
		}
	}

	rawOrder := q.Get("sortOrder")
	if rawOrder == "" {
		rawOrder = q.Get("order")
	}
	order := defaultOrder
	if rawOrder != "" {
		order = query.Order(strings.ToLower(rawOrder))
		if !order.IsValid() {
			return "", "", &coerce.FieldError{
				Field:   "sortOrder",
				Message: "sortOrder must be asc or desc",
			}
		}
	}
	return sortBy, order, nil
}

// filterKey matches a query key against the filterable allow-list, in
// either plain form ("role_id") or bracket form ("role_id[gte]"). Keys for
// unknown fields or unknown operators report false and are skipped.
func filterKey(key string, md query.Metadata) (string, query.Op, bool) {
	if md.IsFilterable(key) {
		return key, query.OpEq, true
	}
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	field := key[:open]
	if !md.IsFilterable(field) {
		return "", "", false
	}
	op, ok := query.ParseOp(key[open+1 : len(key)-1])
	if !ok {
		return "", "", false
	}
	return field, op, true
}
