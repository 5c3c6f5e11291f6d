package model

import "time"

// Role values stored in users.role.  Every account registered through
// the public API starts as a regular user; admins are bootstrapped
// with the createadmin command, never through a request.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table.  PasswordHash is never serialized; auth handlers build their
// own response shapes for the fields they expose.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
