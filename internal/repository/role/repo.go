// Package role implements the Postgres repository for roles.
package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
	"github.com/trossworks/trossd/internal/querybuilder"
)

const roleColumns = "id, name, slug, description, created_at"

// Repo implements usecase/role.Repository over database/sql.
type Repo struct {
	db *sql.DB
	md query.Metadata
}

// New creates a role repository.
func New(db *sql.DB, md query.Metadata) *Repo {
	return &Repo{db: db, md: md}
}

// List returns one page of roles matching the validated query intents.
func (r *Repo) List(ctx context.Context, params query.Params, pg page.Request) ([]domain.Role, int, error) {
	var clauses []string
	var args []any
	offset := 0

	if f := querybuilder.SearchClause(params.Search, r.md.Searchable(), offset); f != nil {
		clauses = append(clauses, f.Clause)
		args = append(args, f.Params...)
		offset = f.ParamOffset
	}
	if f := querybuilder.FilterClause(params.Filters, r.md, offset); f != nil {
		clauses = append(clauses, f.Clause)
		args = append(args, f.Params...)
		offset = f.ParamOffset
	}
	where := ""
	for i, c := range clauses {
		if i == 0 {
			where = " WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM roles"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM roles%s ORDER BY %s LIMIT $%d OFFSET $%d",
		roleColumns, where,
		querybuilder.SortClause(params.SortBy, params.SortOrder, r.md),
		offset+1, offset+2,
	)
	rows, err := r.db.QueryContext(ctx, listQuery, append(args, pg.Limit, pg.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Slug, &role.Description, &role.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	return roles, total, nil
}

// GetBySlug retrieves a role by its slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM roles WHERE slug = $1", roleColumns), slug)

	var role domain.Role
	err := row.Scan(&role.ID, &role.Name, &role.Slug, &role.Description, &role.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Role{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("get role %q: %w", slug, err)
	}
	return role, nil
}
