package model

// UserID uniquely identifies a user account
type UserID string

// Role determines what a user is allowed to do.
// The set is closed; anything else is rejected at the boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Identity is the authenticated user's profile for the current session
type Identity struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ProfileUpdate carries the mutable identity fields
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
