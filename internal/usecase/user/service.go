package user

import (
	"context"
	"fmt"
	"slices"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
)

// Service handles user CRUD operations.
type Service struct {
	repo Repository
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of users with pagination metadata derived from the
// total match count.
func (s *Service) List(ctx context.Context, params query.Params, pg page.Request) ([]domain.User, page.Metadata, error) {
	users, total, err := s.repo.List(ctx, params, pg)
	if err != nil {
		return nil, page.Metadata{}, fmt.Errorf("list users: %w", err)
	}
	return users, page.NewMetadata(pg.Page, pg.Limit, total), nil
}

// Get retrieves a user by id.
func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create validates and stores a new user.
func (s *Service) Create(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	if nu.Status == "" {
		nu.Status = domain.StatusActive
	}
	if !slices.Contains(domain.UserStatuses, nu.Status) {
		return domain.User{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, nu.Status)
	}
	if nu.RoleID < 1 {
		return domain.User{}, fmt.Errorf("%w: role_id is required", domain.ErrInvalidInput)
	}

	u, err := s.repo.Create(ctx, nu)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update applies a validated patch to an existing user.
func (s *Service) Update(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if patch.IsEmpty() {
		return domain.User{}, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if patch.Status != nil && !slices.Contains(domain.UserStatuses, *patch.Status) {
		return domain.User{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
	}

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete deactivates a user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
