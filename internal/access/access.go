// Package access derives capabilities from an identity's role.
// It is consulted twice for every mutation: by the caller before a
// request is attempted, and by the server middleware that has the
// final say.
package access

import "github.com/mfreeman/rosterhub/internal/model"

// Capabilities is the permission set derived from an identity
type Capabilities struct {
	// CanView allows read operations; any authenticated identity has it
	CanView bool
	// CanMutate allows create/update/delete on teams, players,
	// rosters, and games
	CanMutate bool
	// CanManageUsers allows listing registered accounts
	CanManageUsers bool
}

// ForIdentity derives capabilities. A nil identity has none.
func ForIdentity(id *model.Identity) Capabilities {
	if id == nil {
		return Capabilities{}
	}
	return ForRole(id.Role)
}

// ForRole derives capabilities from a role. The switch is exhaustive
// over the closed role set; unknown values get nothing.
func ForRole(role model.Role) Capabilities {
	switch role {
	case model.RoleAdmin:
		return Capabilities{CanView: true, CanMutate: true, CanManageUsers: true}
	case model.RoleCoach:
		return Capabilities{CanView: true, CanMutate: true}
	case model.RoleMember, model.RoleViewer:
		return Capabilities{CanView: true}
	default:
		return Capabilities{}
	}
}
