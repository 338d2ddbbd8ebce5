// Package chi wires the HTTP API: routes, validation middleware chains,
// and translation of domain errors into transport responses.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/coerce"
	"github.com/trossworks/trossd/internal/domain/page"
	healthuc "github.com/trossworks/trossd/internal/usecase/health"
	roleuc "github.com/trossworks/trossd/internal/usecase/role"
	useruc "github.com/trossworks/trossd/internal/usecase/user"
	"github.com/trossworks/trossd/internal/validation"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// QueryLimits bounds the list-endpoint pagination middleware, sourced from
// config.
type QueryLimits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Server exposes the admin CRUD API.
type Server struct {
	users         *useruc.Service
	roles         *roleuc.Service
	health        *healthuc.Service
	limits        QueryLimits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	users *useruc.Service,
	roles *roleuc.Service,
	health *healthuc.Service,
	limits QueryLimits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:  users,
		roles:  roles,
		health: health,
		limits: limits,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrEmailTaken, http.StatusConflict),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
	}
	return s
}

// Routes mounts the API on the given router.
func (s *Server) Routes(r chi.Router) {
	pagination := validation.Pagination(validation.PaginationOptions{
		DefaultLimit: s.limits.DefaultPageSize,
		MaxLimit:     s.limits.MaxPageSize,
	})

	r.Route("/api/users", func(r chi.Router) {
		r.With(validation.Query(domain.UserQueryMetadata()), pagination).
			Get("/", s.ListUsers)
		r.Post("/", s.CreateUser)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(validation.IDParam(validation.IDParamOptions{}))
			r.Get("/", s.GetUser)
			r.Put("/", s.UpdateUser)
			r.Delete("/", s.DeleteUser)
		})
	})

	r.Route("/api/roles", func(r chi.Router) {
		r.With(validation.Query(domain.RoleQueryMetadata()), pagination).
			Get("/", s.ListRoles)
		r.With(validation.SlugParam(validation.SlugParamOptions{})).
			Get("/{slug}", s.GetRole)
	})

	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	c := validation.FromContext(r.Context())
	users, meta, err := s.users.List(r.Context(), c.QueryParams(), c.Pagination())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, listResponse[domain.User]{Data: users, Pagination: meta})
}

// GetUser handles GET /api/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id := validation.FromContext(r.Context()).ID()
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /api/users. The body is coerced field by field so
// loosely typed clients (numbers as strings, 0/1 booleans) keep working.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	nu, err := newUserFromBody(body)
	if err != nil {
		validation.RejectErr(w, "body", err)
		return
	}

	u, err := s.users.Create(r.Context(), nu)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser handles PUT /api/users/{id}. Only fields present in the body
// are patched.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	patch, err := userPatchFromBody(body)
	if err != nil {
		validation.RejectErr(w, "body", err)
		return
	}

	id := validation.FromContext(r.Context()).ID()
	u, err := s.users.Update(r.Context(), id, patch)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/{id} (soft delete).
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := validation.FromContext(r.Context()).ID()
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRoles handles GET /api/roles.
func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	c := validation.FromContext(r.Context())
	roles, meta, err := s.roles.List(r.Context(), c.QueryParams(), c.Pagination())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Role]{Data: roles, Pagination: meta})
}

// GetRole handles GET /api/roles/{slug}.
func (s *Server) GetRole(w http.ResponseWriter, r *http.Request) {
	slug, _ := validation.FromContext(r.Context()).Slug("slug")
	role, err := s.roles.GetBySlug(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: checksToStrings(report.Checks),
	})
}

// handleDomainError walks the sentinel handlers; unmatched errors become an
// opaque 500 so internals never leak.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled domain error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

// --- request/response shapes ---

type listResponse[T any] struct {
	Data       []T           `json:"data"`
	Pagination page.Metadata `json:"pagination"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type apiError struct {
	Error string `json:"error"`
}

func checksToStrings(checks map[string]healthuc.CheckResult) map[string]string {
	out := make(map[string]string, len(checks))
	for k, v := range checks {
		out[k] = string(v)
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		validation.Reject(w, "body", "Invalid request body: "+err.Error())
		return nil, false
	}
	return body, true
}

// newUserFromBody coerces the creation payload.
func newUserFromBody(body map[string]any) (domain.NewUser, error) {
	email, err := coerce.Email(body["email"], "email")
	if err != nil {
		return domain.NewUser{}, err
	}
	first, err := coerce.String(body["first_name"], "first_name", coerce.StringOptions{MaxLength: 100})
	if err != nil {
		return domain.NewUser{}, err
	}
	last, err := coerce.String(body["last_name"], "last_name", coerce.StringOptions{MaxLength: 100})
	if err != nil {
		return domain.NewUser{}, err
	}
	roleID, err := coerce.Integer(body["role_id"], "role_id", coerce.IntOptions{Min: 1})
	if err != nil {
		return domain.NewUser{}, err
	}
	status, err := coerce.String(body["status"], "status", coerce.StringOptions{AllowNull: true})
	if err != nil {
		return domain.NewUser{}, err
	}

	nu := domain.NewUser{
		Email:     *email,
		FirstName: *first,
		LastName:  *last,
		RoleID:    *roleID,
		IsActive:  coerce.Boolean(body["is_active"], "is_active", true),
	}
	if status != nil {
		nu.Status = *status
	}
	return nu, nil
}

// userPatchFromBody coerces only the fields present in the payload.
func userPatchFromBody(body map[string]any) (domain.UserPatch, error) {
	var patch domain.UserPatch

	if v, ok := body["email"]; ok {
		email, err := coerce.Email(v, "email")
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.Email = email
	}
	if v, ok := body["first_name"]; ok {
		first, err := coerce.String(v, "first_name", coerce.StringOptions{MaxLength: 100})
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.FirstName = first
	}
	if v, ok := body["last_name"]; ok {
		last, err := coerce.String(v, "last_name", coerce.StringOptions{MaxLength: 100})
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.LastName = last
	}
	if v, ok := body["role_id"]; ok {
		roleID, err := coerce.Integer(v, "role_id", coerce.IntOptions{Min: 1})
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.RoleID = roleID
	}
	if v, ok := body["status"]; ok {
		status, err := coerce.String(v, "status", coerce.StringOptions{})
		if err != nil {
			return domain.UserPatch{}, err
		}
		patch.Status = status
	}
	if v, ok := body["is_active"]; ok {
		active := coerce.Boolean(v, "is_active", true)
		patch.IsActive = &active
	}
	return patch, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Error: message})
}
