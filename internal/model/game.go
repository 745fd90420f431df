package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus is the scheduling state of a game
type GameStatus string

const (
	GameScheduled  GameStatus = "scheduled"
	GameInProgress GameStatus = "in_progress"
	GameCompleted  GameStatus = "completed"
	GameCancelled  GameStatus = "cancelled"
	GamePostponed  GameStatus = "postponed"
)

// Valid reports whether the status is one of the known values
func (s GameStatus) Valid() bool {
	switch s {
	case GameScheduled, GameInProgress, GameCompleted, GameCancelled, GamePostponed:
		return true
	}
	return false
}

// GameResult is the outcome of a completed game from the team's perspective
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
	ResultDraw GameResult = "draw"
)

// Score holds the final score of a completed game
type Score struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

// Result derives the game result from the score
func (s Score) Result() GameResult {
	switch {
	case s.Team > s.Opponent:
		return ResultWin
	case s.Team < s.Opponent:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Game represents a scheduled or played match.
// Score and Result are set if and only if Status is completed.
type Game struct {
	ID        GameID      `json:"id"`
	TeamID    TeamID      `json:"team_id"`
	Opponent  string      `json:"opponent"`
	Date      string      `json:"date"` // YYYY-MM-DD
	Time      string      `json:"time,omitempty"`
	Location  string      `json:"location,omitempty"`
	HomeGame  bool        `json:"home_game"`
	Season    string      `json:"season"`
	Status    GameStatus  `json:"status"`
	Score     *Score      `json:"score,omitempty"`
	Result    *GameResult `json:"result,omitempty"`
	// Participants lists the players who took part in the game
	Participants []PlayerID `json:"participants,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// GameDraft is the client-submitted payload for creating or updating a game.
// Result is never submitted; the server derives it from the score.
type GameDraft struct {
	TeamID   TeamID     `json:"team_id"`
	Opponent string     `json:"opponent"`
	Date     string     `json:"date"`
	Time     string     `json:"time,omitempty"`
	Location string     `json:"location,omitempty"`
	HomeGame bool       `json:"home_game"`
	Season   string     `json:"season"`
	Status   GameStatus `json:"status"`
	Score    *Score     `json:"score,omitempty"`
}

// Validate checks draft fields the client can verify locally,
// including the score-only-when-completed invariant.
func (d GameDraft) Validate() error {
	if d.Opponent == "" || d.Date == "" || d.Season == "" {
		return ErrMissingField
	}
	if d.TeamID == "" {
		return ErrMissingTeam
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	if d.Score != nil && d.Status != GameCompleted {
		return ErrScoreRequiresCompletion
	}
	if d.Score == nil && d.Status == GameCompleted {
		return ErrCompletionRequiresScore
	}
	return nil
}

// Participation records which players took part in a game
type Participation struct {
	PlayerIDs []PlayerID `json:"player_ids"`
}
