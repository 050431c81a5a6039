package entity

import "time"

// User is an authenticated account. Role carries the identity provider's
// authorization claim; anything other than RoleAdmin is a plain employee.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the account may operate the approval workflow.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile holds the user-editable display name shown on submissions.
type Profile struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}
