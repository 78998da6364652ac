/**
 * @description
 * This file defines the user account model and its API-facing views. Users
 * carry a role (admin or customer) and a stored language preference used by
 * the response-language resolver.
 */
package domain

import (
	"github.com/google/uuid"
)

// Role values gate admin-only routes.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an account row. PasswordHash never leaves the service.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Language     string    `json:"language"` // display name, e.g. "English", "Dutch"
	PasswordHash string    `json:"-"`
	Audit
}

// UserView is the public shape of a user.
type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Language string    `json:"language"`
}

// View strips credential material for API responses.
func (u *User) View() UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Language: u.Language,
	}
}

// MemberReferral records a one-level parent -> child attribution between two
// accounts. The tree is never traversed recursively; only direct children are
// ever listed.
type MemberReferral struct {
	ID       uuid.UUID `json:"id"`
	ParentID uuid.UUID `json:"parent_id"`
	ChildID  uuid.UUID `json:"child_id"`
	Audit
}
