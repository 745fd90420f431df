package storage

import (
	"context"

	"github.com/mfreeman/rosterhub/internal/model"
)

// PlayerFilter narrows a player listing; zero fields match everything
type PlayerFilter struct {
	TeamID model.TeamID
	Status model.PlayerStatus
}

// RosterFilter narrows a roster listing
type RosterFilter struct {
	TeamID model.TeamID
	Type   model.RosterType
}

// GameFilter narrows a game listing
type GameFilter struct {
	TeamID model.TeamID
	Status model.GameStatus
}

// Storage defines the interface for data persistence.
// List operations return entities ordered by creation time then ID.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Team operations
	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	DeleteTeam(ctx context.Context, id model.TeamID) error
	ListTeams(ctx context.Context) ([]*model.Team, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ListPlayers(ctx context.Context, f PlayerFilter) ([]*model.Player, error)

	// Roster operations
	SaveRoster(ctx context.Context, roster *model.Roster) error
	GetRoster(ctx context.Context, id model.RosterID) (*model.Roster, error)
	DeleteRoster(ctx context.Context, id model.RosterID) error
	ListRosters(ctx context.Context, f RosterFilter) ([]*model.Roster, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context, f GameFilter) ([]*model.Game, error)
}

// Match reports whether a player passes the filter
func (f PlayerFilter) Match(p *model.Player) bool {
	if f.TeamID != "" && p.TeamID != f.TeamID {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

// Match reports whether a roster passes the filter
func (f RosterFilter) Match(r *model.Roster) bool {
	if f.TeamID != "" && r.TeamID != f.TeamID {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}

// Match reports whether a game passes the filter
func (f GameFilter) Match(g *model.Game) bool {
	if f.TeamID != "" && g.TeamID != f.TeamID {
		return false
	}
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	return true
}
