package domain

import "time"

// Role slugs form a flat hierarchy; authorization decisions compare them
// directly, there is no inheritance.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleDispatcher = "dispatcher"
	RoleTechnician = "technician"
	RoleClient     = "client"
)

// Role is an authorization role assignable to users.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
