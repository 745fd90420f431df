package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Entities are cloned on save and on read so callers never share
// mutable state with the store or with each other, matching the
// isolation a serializing backend gives for free.
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID
	teams      map[model.TeamID]*model.Team
	players    map[model.PlayerID]*model.Player
	rosters    map[model.RosterID]*model.Roster
	games      map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
		teams:      make(map[model.TeamID]*model.Team),
		players:    make(map[model.PlayerID]*model.Player),
		rosters:    make(map[model.RosterID]*model.Roster),
		games:      make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Drop the index entry for a previous email
	if existing, ok := s.users[user.ID]; ok && existing.Email != user.Email {
		delete(s.emailIndex, existing.Email)
	}
	s.users[user.ID] = cloneUser(user)
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = cloneTeam(team)
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return cloneTeam(team), nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	return nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, cloneTeam(t))
	}
	sort.Slice(teams, func(i, j int) bool {
		if !teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].CreatedAt.Before(teams[j].CreatedAt)
		}
		return teams[i].ID < teams[j].ID
	})
	return teams, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = clonePlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context, f storage.PlayerFilter) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		if f.Match(p) {
			players = append(players, clonePlayer(p))
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.Before(players[j].CreatedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[roster.ID] = cloneRoster(roster)
	return nil
}

func (s *Storage) GetRoster(ctx context.Context, id model.RosterID) (*model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster, ok := s.rosters[id]
	if !ok {
		return nil, model.ErrRosterNotFound
	}
	return cloneRoster(roster), nil
}

func (s *Storage) DeleteRoster(ctx context.Context, id model.RosterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rosters, id)
	return nil
}

func (s *Storage) ListRosters(ctx context.Context, f storage.RosterFilter) ([]*model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rosters := make([]*model.Roster, 0, len(s.rosters))
	for _, r := range s.rosters {
		if f.Match(r) {
			rosters = append(rosters, cloneRoster(r))
		}
	}
	sort.Slice(rosters, func(i, j int) bool {
		if !rosters[i].CreatedAt.Equal(rosters[j].CreatedAt) {
			return rosters[i].CreatedAt.Before(rosters[j].CreatedAt)
		}
		return rosters[i].ID < rosters[j].ID
	})
	return rosters, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context, f storage.GameFilter) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		if f.Match(g) {
			games = append(games, cloneGame(g))
		}
	}
	sort.Slice(games, func(i, j int) bool {
		if !games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].CreatedAt.Before(games[j].CreatedAt)
		}
		return games[i].ID < games[j].ID
	})
	return games, nil
}

// Clone helpers

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func cloneTeam(t *model.Team) *model.Team {
	c := *t
	c.PlayerIDs = append([]model.PlayerID(nil), t.PlayerIDs...)
	return &c
}

func clonePlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}

func cloneRoster(r *model.Roster) *model.Roster {
	c := *r
	c.PlayerIDs = append([]model.PlayerID(nil), r.PlayerIDs...)
	return &c
}

func cloneGame(g *model.Game) *model.Game {
	c := *g
	c.Participants = append([]model.PlayerID(nil), g.Participants...)
	if g.Score != nil {
		score := *g.Score
		c.Score = &score
	}
	if g.Result != nil {
		result := *g.Result
		c.Result = &result
	}
	return &c
}
