package request

import "github.com/mfreeman/rosterhub/internal/model"

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RosterPlayerRequest is the request body for adding a player to a roster
type RosterPlayerRequest struct {
	PlayerID model.PlayerID `json:"player_id"`
}
