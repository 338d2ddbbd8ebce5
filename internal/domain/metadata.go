package domain

import "github.com/trossworks/trossd/internal/domain/query"

// UserQueryMetadata declares which user columns the list endpoint may
// search, filter, and sort. Constructed once at startup and injected into
// both the validators and the repository.
func UserQueryMetadata() query.Metadata {
	return query.MustMetadata(
		[]string{"email", "first_name", "last_name"},
		map[string]query.FieldType{
			"role_id":   query.FieldInteger,
			"is_active": query.FieldBoolean,
			"status":    query.FieldString,
		},
		[]string{"id", "email", "first_name", "last_name", "role_id", "status", "created_at"},
		query.DefaultSort{Field: "id", Order: query.Asc},
	)
}

// RoleQueryMetadata declares the queryable role columns.
func RoleQueryMetadata() query.Metadata {
	return query.MustMetadata(
		[]string{"name", "slug"},
		map[string]query.FieldType{
			"slug": query.FieldString,
		},
		[]string{"id", "name", "slug", "created_at"},
		query.DefaultSort{Field: "id", Order: query.Asc},
	)
}
