package user

import (
	"context"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
)

// Repository defines the storage contract for users.
type Repository interface {
	List(ctx context.Context, params query.Params, pg page.Request) ([]domain.User, int, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, nu domain.NewUser) (domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}
