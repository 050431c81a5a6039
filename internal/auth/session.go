package auth

import "github.com/fivemlab/commute-expense/internal/domain/entity"

// Session is the signed-in identity attached to a request after token
// verification. It is passed explicitly to anything that needs it; there
// is no ambient current-user state.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the session may operate the approval workflow.
// The check is a single comparison on the role claim, nothing more.
func (s Session) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}
