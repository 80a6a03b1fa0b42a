package domain

import "time"

// Role enumerates access levels for portal members.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleBlocked Role = "blocked"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBlocked:
		return true
	}
	return false
}

// Principal is an authenticated member of the organization. Records are
// provisioned on first sign-in and keyed by the identity provider subject.
type Principal struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
	Role        Role
	LastLogin   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
