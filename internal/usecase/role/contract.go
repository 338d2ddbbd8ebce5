package role

import (
	"context"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
)

// Repository defines the storage contract for roles.
type Repository interface {
	List(ctx context.Context, params query.Params, pg page.Request) ([]domain.Role, int, error)
	GetBySlug(ctx context.Context, slug string) (domain.Role, error)
}
