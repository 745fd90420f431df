package store

import (
	"context"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

// Games is the client-side store for the game collection
type Games struct {
	gw  *client.Client
	col collection[model.Game]
}

// NewGames creates a game store over the gateway
func NewGames(gw *client.Client) *Games {
	return &Games{gw: gw}
}

// List returns the game collection under f (selections: team, status)
func (s *Games) List(ctx context.Context, f filter.Filter) ([]model.Game, error) {
	return list(ctx, s.gw, gamesPath, &s.col, f)
}

// Get fetches a single game by id
func (s *Games) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.gw.Get(ctx, gamesPath+"/"+string(id), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Create submits a new game and resynchronizes the collection.
// A draft with a score on a non-completed status is rejected before it
// is sent; the server enforces the same invariant authoritatively.
func (s *Games) Create(ctx context.Context, draft model.GameDraft) (*model.Game, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created model.Game
	if err := s.gw.Post(ctx, gamesPath, draft, &created); err != nil {
		return nil, err
	}
	if err := resync(ctx, s.gw, gamesPath, &s.col); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a game's fields and resynchronizes the collection
func (s *Games) Update(ctx context.Context, id model.GameID, draft model.GameDraft) (*model.Game, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var updated model.Game
	err := s.gw.Put(ctx, gamesPath+"/"+string(id), draft, &updated)
	if err := finishMutation(ctx, s.gw, gamesPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a game and resynchronizes the collection
func (s *Games) Delete(ctx context.Context, id model.GameID) error {
	err := s.gw.Delete(ctx, gamesPath+"/"+string(id))
	return finishMutation(ctx, s.gw, gamesPath, &s.col, err)
}

// UpdateParticipation replaces the set of players who took part in a game
func (s *Games) UpdateParticipation(ctx context.Context, id model.GameID, p model.Participation) (*model.Game, error) {
	var updated model.Game
	err := s.gw.Put(ctx, gamesPath+"/"+string(id)+"/participation", p, &updated)
	if err := finishMutation(ctx, s.gw, gamesPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Items returns the visible collection without fetching
func (s *Games) Items() []model.Game {
	return s.col.visible()
}

// Invalidate forces the next List to re-fetch
func (s *Games) Invalidate() {
	s.col.invalidate()
}
