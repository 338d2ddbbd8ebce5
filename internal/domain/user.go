// Package domain holds the entities and sentinel errors shared across
// use cases, repositories, and transport.
package domain

import "time"

// User statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// UserStatuses is the closed set of valid user statuses.
var UserStatuses = []string{StatusActive, StatusInactive, StatusSuspended}

// User is an admin-managed account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	RoleID    int64     `json:"role_id"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser holds the validated fields for user creation.
type NewUser struct {
	Email     string
	FirstName string
	LastName  string
	RoleID    int64
	Status    string
	IsActive  bool
}

// UserPatch holds the validated fields for a user update. Nil means
// "leave unchanged".
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	RoleID    *int64
	Status    *string
	IsActive  *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.RoleID == nil && p.Status == nil && p.IsActive == nil
}
