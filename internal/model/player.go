package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// PlayerStatus is a player's availability state
type PlayerStatus string

const (
	PlayerActive    PlayerStatus = "active"
	PlayerInjured   PlayerStatus = "injured"
	PlayerSuspended PlayerStatus = "suspended"
	PlayerInactive  PlayerStatus = "inactive"
)

// Valid reports whether the status is one of the known values
func (s PlayerStatus) Valid() bool {
	switch s {
	case PlayerActive, PlayerInjured, PlayerSuspended, PlayerInactive:
		return true
	}
	return false
}

// Jersey number bounds, inclusive
const (
	MinJerseyNumber = 0
	MaxJerseyNumber = 99
)

// PlayerStats holds per-player accumulated statistics
type PlayerStats struct {
	GamesPlayed int `json:"games_played"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// Player represents a team member.
// A player belongs to exactly one team at a time.
type Player struct {
	ID           PlayerID     `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	DateOfBirth  string       `json:"date_of_birth"` // YYYY-MM-DD
	Position     string       `json:"position"`
	JerseyNumber int          `json:"jersey_number"`
	TeamID       TeamID       `json:"team_id"`
	Height       string       `json:"height,omitempty"`
	Weight       string       `json:"weight,omitempty"`
	Status       PlayerStatus `json:"status"`
	Stats        PlayerStats  `json:"stats"`
	CreatedAt    time.Time    `json:"created_at"`
}

// FullName returns the player's display name
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PlayerDraft is the client-submitted payload for creating or updating a player
type PlayerDraft struct {
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	DateOfBirth  string       `json:"date_of_birth"`
	Position     string       `json:"position"`
	JerseyNumber int          `json:"jersey_number"`
	TeamID       TeamID       `json:"team_id"`
	Height       string       `json:"height,omitempty"`
	Weight       string       `json:"weight,omitempty"`
	Status       PlayerStatus `json:"status"`
}

// Validate checks draft fields the client can verify locally
func (d PlayerDraft) Validate() error {
	if d.FirstName == "" || d.LastName == "" || d.Position == "" || d.DateOfBirth == "" {
		return ErrMissingField
	}
	if d.TeamID == "" {
		return ErrMissingTeam
	}
	if d.JerseyNumber < MinJerseyNumber || d.JerseyNumber > MaxJerseyNumber {
		return ErrJerseyOutOfRange
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
