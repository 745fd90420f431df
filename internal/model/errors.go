package model

import "errors"

// Common errors used across the application
var (
	// Validation errors
	ErrMissingField            = errors.New("required field is missing")
	ErrMissingTeam             = errors.New("a team reference is required")
	ErrInvalidSport            = errors.New("unknown sport type")
	ErrInvalidStatus           = errors.New("unknown status")
	ErrInvalidRosterType       = errors.New("unknown roster type")
	ErrInvalidRole             = errors.New("unknown role")
	ErrJerseyOutOfRange        = errors.New("jersey number must be between 0 and 99")
	ErrJerseyTaken             = errors.New("jersey number already in use on this team")
	ErrScoreRequiresCompletion = errors.New("score may only be set on a completed game")
	ErrCompletionRequiresScore = errors.New("a completed game requires a score")

	// Lookup errors
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrRosterNotFound = errors.New("roster not found")
	ErrGameNotFound   = errors.New("game not found")

	// Relationship errors
	ErrTeamInUse       = errors.New("team still has players, rosters, or games")
	ErrNotOnRoster     = errors.New("player is not on this roster")
	ErrAlreadyOnRoster = errors.New("player is already on this roster")
)
