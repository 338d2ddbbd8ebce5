// Package user implements the Postgres repository for users. List queries
// are assembled from validated querybuilder fragments; writes go through
// squirrel.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trossworks/trossd/internal/domain"
	"github.com/trossworks/trossd/internal/domain/page"
	"github.com/trossworks/trossd/internal/domain/query"
	"github.com/trossworks/trossd/internal/querybuilder"
)

const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = "id, email, first_name, last_name, role_id, status, is_active, created_at, updated_at"

// Repo implements usecase/user.Repository over database/sql.
type Repo struct {
	db *sql.DB
	md query.Metadata
}

// New creates a user repository. md is the user query metadata shared with
// the list validators.
func New(db *sql.DB, md query.Metadata) *Repo {
	return &Repo{db: db, md: md}
}

// List returns one page of users matching the validated query intents,
// plus the total match count for pagination metadata.
func (r *Repo) List(ctx context.Context, params query.Params, pg page.Request) ([]domain.User, int, error) {
	where, args, offset := r.whereClause(params)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d",
		userColumns, where,
		querybuilder.SortClause(params.SortBy, params.SortOrder, r.md),
		offset+1, offset+2,
	)
	rows, err := r.db.QueryContext(ctx, listQuery, append(args, pg.Limit, pg.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Get retrieves a user by id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// Create inserts a user and returns the stored row.
func (r *Repo) Create(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	q, args, err := psql.Insert("users").
		Columns("email", "first_name", "last_name", "role_id", "status", "is_active").
		Values(nu.Email, nu.FirstName, nu.LastName, nu.RoleID, nu.Status, nu.IsActive).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build insert: %w", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update applies a patch and returns the updated row.
func (r *Repo) Update(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	b := psql.Update("users").Where(sq.Eq{"id": id})
	if patch.Email != nil {
		b = b.Set("email", *patch.Email)
	}
	if patch.FirstName != nil {
		b = b.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		b = b.Set("last_name", *patch.LastName)
	}
	if patch.RoleID != nil {
		b = b.Set("role_id", *patch.RoleID)
	}
	if patch.Status != nil {
		b = b.Set("status", *patch.Status)
	}
	if patch.IsActive != nil {
		b = b.Set("is_active", *patch.IsActive)
	}
	b = b.Set("updated_at", sq.Expr("now()"))

	q, args, err := b.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build update: %w", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

// Delete deactivates a user (soft delete).
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q, args, err := psql.Update("users").
		Set("is_active", false).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// whereClause chains search and filter fragments per the builder's
// composition contract and returns the WHERE text, its parameters, and the
// placeholder count consumed so far.
func (r *Repo) whereClause(params query.Params) (string, []any, int) {
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

	if len(clauses) == 0 {
		return "", nil, 0
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args, offset
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&u.RoleID, &u.Status, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
