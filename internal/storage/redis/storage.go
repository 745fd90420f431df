package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; a SET per kind indexes the member
// keys so listings can MGET them in one round trip.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Drop the index entry for a previous email
	var staleEmail string
	if existing, err := s.GetUser(ctx, user.ID); err == nil && existing.Email != user.Email {
		staleEmail = existing.Email
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey(), userKey(user.ID))
	if staleEmail != "" {
		pipe.Del(ctx, emailIndexKey(staleEmail))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(idStr))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := listIndexed[model.User](ctx, s.client, usersIndexKey())
	if err != nil {
		return nil, err
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
	return s.saveIndexed(ctx, teamKey(team.ID), teamsIndexKey(), team)
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var team model.Team
	if err := s.getJSON(ctx, teamKey(id), &team, model.ErrTeamNotFound); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	return s.deleteIndexed(ctx, teamKey(id), teamsIndexKey())
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	teams, err := listIndexed[model.Team](ctx, s.client, teamsIndexKey())
	if err != nil {
		return nil, err
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
	return s.saveIndexed(ctx, playerKey(player.ID), playersIndexKey(), player)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.deleteIndexed(ctx, playerKey(id), playersIndexKey())
}

func (s *Storage) ListPlayers(ctx context.Context, f storage.PlayerFilter) ([]*model.Player, error) {
	players, err := listIndexed[model.Player](ctx, s.client, playersIndexKey())
	if err != nil {
		return nil, err
	}

	filtered := players[:0]
	for _, p := range players {
		if f.Match(p) {
			filtered = append(filtered, p)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].ID < filtered[j].ID
	})
	return filtered, nil
}

// Roster operations

func (s *Storage) SaveRoster(ctx context.Context, roster *model.Roster) error {
	return s.saveIndexed(ctx, rosterKey(roster.ID), rostersIndexKey(), roster)
}

func (s *Storage) GetRoster(ctx context.Context, id model.RosterID) (*model.Roster, error) {
	var roster model.Roster
	if err := s.getJSON(ctx, rosterKey(id), &roster, model.ErrRosterNotFound); err != nil {
		return nil, err
	}
	return &roster, nil
}

func (s *Storage) DeleteRoster(ctx context.Context, id model.RosterID) error {
	return s.deleteIndexed(ctx, rosterKey(id), rostersIndexKey())
}

func (s *Storage) ListRosters(ctx context.Context, f storage.RosterFilter) ([]*model.Roster, error) {
	rosters, err := listIndexed[model.Roster](ctx, s.client, rostersIndexKey())
	if err != nil {
		return nil, err
	}

	filtered := rosters[:0]
	for _, r := range rosters {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].ID < filtered[j].ID
	})
	return filtered, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	return s.saveIndexed(ctx, gameKey(game.ID), gamesIndexKey(), game)
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, gameKey(id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.deleteIndexed(ctx, gameKey(id), gamesIndexKey())
}

func (s *Storage) ListGames(ctx context.Context, f storage.GameFilter) ([]*model.Game, error) {
	games, err := listIndexed[model.Game](ctx, s.client, gamesIndexKey())
	if err != nil {
		return nil, err
	}

	filtered := games[:0]
	for _, g := range games {
		if f.Match(g) {
			filtered = append(filtered, g)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].ID < filtered[j].ID
	})
	return filtered, nil
}

// Shared helpers

func (s *Storage) saveIndexed(ctx context.Context, key, indexKey string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) deleteIndexed(ctx context.Context, key, indexKey string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey, key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func listIndexed[T any](ctx context.Context, client *redis.Client, indexKey string) ([]*T, error) {
	keys, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*T{}, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Key deleted between SMEMBERS and MGET
		}
		var item T
		if err := json.Unmarshal([]byte(val.(string)), &item); err != nil {
			continue // Skip invalid data
		}
		items = append(items, &item)
	}

	return items, nil
}
