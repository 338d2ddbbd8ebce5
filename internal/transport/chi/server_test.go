package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
	healthuc "github.com/trossworks/trossd/internal/usecase/health"
	roleuc "github.com/trossworks/trossd/internal/usecase/role"
	useruc "github.com/trossworks/trossd/internal/usecase/user"
)

type stubUserRepo struct {
	users      []domain.User
	total      int
	err        error
	lastParams query.Params
	lastPage   page.Request
}

func (s *stubUserRepo) List(_ context.Context, params query.Params, pg page.Request) ([]domain.User, int, error) {
	s.lastParams = params
	s.lastPage = pg
	return s.users, s.total, s.err
}

func (s *stubUserRepo) Get(_ context.Context, id int64) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	return domain.User{ID: id, Email: "ada@example.com"}, nil
}

func (s *stubUserRepo) Create(_ context.Context, nu domain.NewUser) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	return domain.User{ID: 1, Email: nu.Email, Status: nu.Status, RoleID: nu.RoleID}, nil
}

func (s *stubUserRepo) Update(_ context.Context, id int64, _ domain.UserPatch) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	return domain.User{ID: id}, nil
}

func (s *stubUserRepo) Delete(_ context.Context, _ int64) error { return s.err }

type stubRoleRepo struct {
	roles []domain.Role
	err   error
}

func (s *stubRoleRepo) List(_ context.Context, _ query.Params, _ page.Request) ([]domain.Role, int, error) {
	return s.roles, len(s.roles), s.err
}

func (s *stubRoleRepo) GetBySlug(_ context.Context, slug string) (domain.Role, error) {
	if s.err != nil {
		return domain.Role{}, s.err
	}
	return domain.Role{ID: 1, Slug: slug, Name: "Administrator"}, nil
}

type stubPinger struct{ err error }

func (s *stubPinger) PingContext(context.Context) error { return s.err }

func newTestServer(userRepo *stubUserRepo, roleRepo *stubRoleRepo, ping *stubPinger) http.Handler {
	if userRepo == nil {
		userRepo = &stubUserRepo{}
	}
	if roleRepo == nil {
		roleRepo = &stubRoleRepo{}
	}
	if ping == nil {
		ping = &stubPinger{}
	}
	srv := NewServer(
		useruc.New(userRepo),
		roleuc.New(roleRepo),
		healthuc.New(ping),
		QueryLimits{DefaultPageSize: 50, MaxPageSize: 200},
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestListUsers(t *testing.T) {
	repo := &stubUserRepo{
		users: []domain.User{{ID: 1, Email: "ada@example.com", CreatedAt: time.Now()}},
		total: 35,
	}
	h := newTestServer(repo, nil, nil)

	rr := doRequest(t, h, "GET", "/api/users?search=ada&role_id=2&page=2&limit=10&sortBy=email", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data       []domain.User `json:"data"`
		Pagination page.Metadata `json:"pagination"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Pagination.Total != 35 || resp.Pagination.TotalPages != 4 {
		t.Errorf("response: %+v", resp)
	}

	if repo.lastParams.Search != "ada" || repo.lastParams.SortBy != "email" {
		t.Errorf("query params not forwarded: %+v", repo.lastParams)
	}
	if f := repo.lastParams.Filters["role_id"]; f.Value != int64(2) {
		t.Errorf("filter not forwarded: %+v", f)
	}
	if repo.lastPage.Offset != 10 {
		t.Errorf("pagination not forwarded: %+v", repo.lastPage)
	}
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	h := newTestServer(&stubUserRepo{}, nil, nil)
	rr := doRequest(t, h, "GET", "/api/users", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Errorf("empty list should encode as []: %s", rr.Body.String())
	}
}

func TestListUsers_BadQuery400(t *testing.T) {
	h := newTestServer(nil, nil, nil)
	rr := doRequest(t, h, "GET", "/api/users?sortBy=password", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Validation Error") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestGetUser_BadID400(t *testing.T) {
	h := newTestServer(nil, nil, nil)
	rr := doRequest(t, h, "GET", "/api/users/abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
}

func TestGetUser_NotFound404(t *testing.T) {
	h := newTestServer(&stubUserRepo{err: domain.ErrNotFound}, nil, nil)
	rr := doRequest(t, h, "GET", "/api/users/99", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
}

func TestCreateUser(t *testing.T) {
	h := newTestServer(&stubUserRepo{}, nil, nil)

	body := `{"email": "Ada@Example.com", "first_name": "Ada", "last_name": "Lovelace", "role_id": "2"}`
	rr := doRequest(t, h, "POST", "/api/users", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var u domain.User
	if err := json.NewDecoder(rr.Body).Decode(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Email normalized, numeric-string role coerced, status defaulted.
	if u.Email != "ada@example.com" || u.RoleID != 2 || u.Status != domain.StatusActive {
		t.Errorf("user: %+v", u)
	}
}

func TestCreateUser_BadEmail400(t *testing.T) {
	h := newTestServer(nil, nil, nil)
	rr := doRequest(t, h, "POST", "/api/users", `{"email": "not-an-email", "first_name": "A", "last_name": "B", "role_id": 2}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "email must be a valid email address") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestCreateUser_DuplicateEmail409(t *testing.T) {
	h := newTestServer(&stubUserRepo{err: domain.ErrEmailTaken}, nil, nil)
	rr := doRequest(t, h, "POST", "/api/users", `{"email": "dup@example.com", "first_name": "A", "last_name": "B", "role_id": 2}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d", rr.Code)
	}
}

func TestUpdateUser_EmptyPatch400(t *testing.T) {
	h := newTestServer(&stubUserRepo{}, nil, nil)
	rr := doRequest(t, h, "PUT", "/api/users/7", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestDeleteUser_NoContent(t *testing.T) {
	h := newTestServer(&stubUserRepo{}, nil, nil)
	rr := doRequest(t, h, "DELETE", "/api/users/7", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", rr.Code)
	}
}

func TestGetRole(t *testing.T) {
	h := newTestServer(nil, &stubRoleRepo{}, nil)
	rr := doRequest(t, h, "GET", "/api/roles/admin", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var role domain.Role
	if err := json.NewDecoder(rr.Body).Decode(&role); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if role.Slug != "admin" {
		t.Errorf("role: %+v", role)
	}
}

func TestGetRole_BadSlug400(t *testing.T) {
	h := newTestServer(nil, nil, nil)
	rr := doRequest(t, h, "GET", "/api/roles/My-Post", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "lowercase letters") {
		t.Errorf("body: %s", rr.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(nil, nil, nil)
	rr := doRequest(t, h, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthy: got %d", rr.Code)
	}

	h = newTestServer(nil, nil, &stubPinger{err: context.DeadlineExceeded})
	rr = doRequest(t, h, "GET", "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded: got %d", rr.Code)
	}
}
