package response

import (
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/services/auth"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User  model.Identity `json:"user"`
	Token string         `json:"token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:  s.Identity,
		Token: s.Token,
	}
}
