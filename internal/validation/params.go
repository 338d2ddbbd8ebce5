package validation

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/trossworks/trossd/internal/domain/coerce"
)

// IDParamOptions controls IDParam. Zero values mean name "id", min 1, no
// upper bound.
type IDParamOptions struct {
	Name string
	Min  int64
	Max  int64
}

// IDParam validates an integer path parameter and stores it in the
// request's container under the parameter name.
func IDParam(opts IDParamOptions) func(http.Handler) http.Handler {
	name := opts.Name
	if name == "" {
		name = "id"
	}
	min := opts.Min
	if min <= 0 {
		min = 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, name)
			id, err := coerce.Integer(raw, name, coerce.IntOptions{Min: min, Max: opts.Max})
			if err != nil {
				logFailure(r.Context(), "id_param", name, raw, err.Error())
				RejectErr(w, name, err)
				return
			}

			c, r := container(r)
			c.setParam(name, *id)
			c.legacyID = *id
			logSuccess(r.Context(), "id_param", name)
			next.ServeHTTP(w, r)
		})
	}
}

// IDParams validates several integer path parameters in order, failing fast
// on the first bad one. The failure envelope names "params" as the field and
// the offending parameter in the message.
func IDParams(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, r := container(r)
			for _, name := range names {
				raw := chi.URLParam(r, name)
				id, err := coerce.Integer(raw, name, coerce.IntOptions{Min: 1})
				if err != nil {
					logFailure(r.Context(), "id_params", name, raw, err.Error())
					Reject(w, "params", fmt.Sprintf("invalid parameter %s: %s", name, err.Error()))
					return
				}
				c.setParam(name, *id)
			}
			logSuccess(r.Context(), "id_params", "params")
			next.ServeHTTP(w, r)
		})
	}
}

// slugPattern: lowercase alphanumerics joined by single hyphens. No leading
// or trailing hyphen, no underscore, no uppercase.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// SlugParamOptions controls SlugParam. Zero values mean name "slug",
// length 1..100.
type SlugParamOptions struct {
	Name      string
	MinLength int
	MaxLength int
}

// SlugParam validates a URL-safe slug path parameter.
func SlugParam(opts SlugParamOptions) func(http.Handler) http.Handler {
	name := opts.Name
	if name == "" {
		name = "slug"
	}
	minLen := opts.MinLength
	if minLen <= 0 {
		minLen = 1
	}
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = 100
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, name)
			s, err := coerce.String(raw, name, coerce.StringOptions{})
			if err != nil {
				logFailure(r.Context(), "slug_param", name, raw, err.Error())
				RejectErr(w, name, err)
				return
			}
			slug := *s
			if len(slug) < minLen || len(slug) > maxLen {
				msg := fmt.Sprintf("%s must be between %d and %d characters", name, minLen, maxLen)
				logFailure(r.Context(), "slug_param", name, raw, msg)
				Reject(w, name, msg)
				return
			}
			if !slugPattern.MatchString(slug) {
				msg := fmt.Sprintf("%s must contain only lowercase letters, numbers, and single hyphens", name)
				logFailure(r.Context(), "slug_param", name, raw, msg)
				Reject(w, name, msg)
				return
			}

			c, r := container(r)
			c.setSlug(name, slug)
			logSuccess(r.Context(), "slug_param", name)
			next.ServeHTTP(w, r)
		})
	}
}
