package role

import (
	"context"
	"fmt"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
)

// Service handles role read operations. Roles are seeded by migration and
// managed out of band; the API only reads them.
type Service struct {
	repo Repository
}

// New creates a role service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of roles with pagination metadata.
func (s *Service) List(ctx context.Context, params query.Params, pg page.Request) ([]domain.Role, page.Metadata, error) {
	roles, total, err := s.repo.List(ctx, params, pg)
	if err != nil {
		return nil, page.Metadata{}, fmt.Errorf("list roles: %w", err)
	}
	return roles, page.NewMetadata(pg.Page, pg.Limit, total), nil
}

// GetBySlug retrieves a role by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Role, error) {
	r, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Role{}, fmt.Errorf("get role: %w", err)
	}
	return r, nil
}
