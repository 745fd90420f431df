package model

import "time"

// RosterID uniquely identifies a roster
type RosterID string

// RosterType classifies a roster's purpose
type RosterType string

const (
	RosterActive    RosterType = "active"
	RosterInjured   RosterType = "injured"
	RosterSuspended RosterType = "suspended"
	RosterReserve   RosterType = "reserve"
	RosterStarting  RosterType = "starting"
)

// Valid reports whether the roster type is one of the known values
func (t RosterType) Valid() bool {
	switch t {
	case RosterActive, RosterInjured, RosterSuspended, RosterReserve, RosterStarting:
		return true
	}
	return false
}

// Roster is a named selection of a team's players
type Roster struct {
	ID        RosterID   `json:"id"`
	Name      string     `json:"name"`
	TeamID    TeamID     `json:"team_id"`
	Type      RosterType `json:"type"`
	Season    string     `json:"season"`
	PlayerIDs []PlayerID `json:"player_ids"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// HasPlayer reports whether the roster contains the given player
func (r *Roster) HasPlayer(id PlayerID) bool {
	for _, pid := range r.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// RosterDraft is the client-submitted payload for creating or updating a roster
type RosterDraft struct {
	Name   string     `json:"name"`
	TeamID TeamID     `json:"team_id"`
	Type   RosterType `json:"type"`
	Season string     `json:"season"`
	Notes  string     `json:"notes,omitempty"`
}

// Validate checks draft fields the client can verify locally
func (d RosterDraft) Validate() error {
	if d.Name == "" || d.Season == "" {
		return ErrMissingField
	}
	if d.TeamID == "" {
		return ErrMissingTeam
	}
	if !d.Type.Valid() {
		return ErrInvalidRosterType
	}
	return nil
}
