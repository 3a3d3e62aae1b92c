package model

import (
	"strings"
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleSuperUser = "super-user"
	RoleUser      = "user"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	FullName     string     `json:"fullName"`
	IsActive     bool       `json:"isActive"`
	Roles        []string   `json:"roles"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// NormalizeEmail is applied before every insert or lookup of a user email.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// HasAnyRole reports whether u carries at least one of roles.
func (u *User) HasAnyRole(roles []string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
