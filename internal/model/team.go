package model

import "time"

// TeamID uniquely identifies a team
type TeamID string

// SportType is the sport a team plays
type SportType string

const (
	SportSoccer     SportType = "soccer"
	SportBasketball SportType = "basketball"
	SportBaseball   SportType = "baseball"
	SportFootball   SportType = "football"
	SportHockey     SportType = "hockey"
	SportVolleyball SportType = "volleyball"
	SportCricket    SportType = "cricket"
	SportRugby      SportType = "rugby"
	SportTennis     SportType = "tennis"
	SportOther      SportType = "other"
)

// Valid reports whether the sport type is one of the known values
func (s SportType) Valid() bool {
	switch s {
	case SportSoccer, SportBasketball, SportBaseball, SportFootball,
		SportHockey, SportVolleyball, SportCricket, SportRugby,
		SportTennis, SportOther:
		return true
	}
	return false
}

// TeamRecord is the aggregate win/loss record, derived server-side
type TeamRecord struct {
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Draws        int `json:"draws"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// Team represents a sports team
type Team struct {
	ID          TeamID     `json:"id"`
	Name        string     `json:"name"`
	Sport       SportType  `json:"sport"`
	Season      string     `json:"season"`
	Division    string     `json:"division,omitempty"`
	Description string     `json:"description,omitempty"`
	CoachID     UserID     `json:"coach_id,omitempty"`
	Record      TeamRecord `json:"record"`
	PlayerIDs   []PlayerID `json:"player_ids,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TeamDraft is the client-submitted payload for creating or updating a team.
// Record and PlayerIDs are server-derived and never part of a draft.
type TeamDraft struct {
	Name        string    `json:"name"`
	Sport       SportType `json:"sport"`
	Season      string    `json:"season"`
	Division    string    `json:"division,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Validate checks draft fields the client can verify locally
func (d TeamDraft) Validate() error {
	if d.Name == "" {
		return ErrMissingField
	}
	if !d.Sport.Valid() {
		return ErrInvalidSport
	}
	if d.Season == "" {
		return ErrMissingField
	}
	return nil
}
