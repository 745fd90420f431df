package store

import (
	"context"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

// Players is the client-side store for the player collection
type Players struct {
	gw  *client.Client
	col collection[model.Player]
}

// NewPlayers creates a player store over the gateway
func NewPlayers(gw *client.Client) *Players {
	return &Players{gw: gw}
}

// List returns the player collection under f (selections: team, status)
func (s *Players) List(ctx context.Context, f filter.Filter) ([]model.Player, error) {
	return list(ctx, s.gw, playersPath, &s.col, f)
}

// Get fetches a single player by id
func (s *Players) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.gw.Get(ctx, playersPath+"/"+string(id), nil, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Create submits a new player and resynchronizes the collection.
// The jersey number is checked against the visible collection first;
// the server remains the authority.
func (s *Players) Create(ctx context.Context, draft model.PlayerDraft) (*model.Player, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkJersey(draft, ""); err != nil {
		return nil, err
	}

	var created model.Player
	if err := s.gw.Post(ctx, playersPath, draft, &created); err != nil {
		return nil, err
	}
	if err := resync(ctx, s.gw, playersPath, &s.col); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a player's fields and resynchronizes the collection
func (s *Players) Update(ctx context.Context, id model.PlayerID, draft model.PlayerDraft) (*model.Player, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkJersey(draft, id); err != nil {
		return nil, err
	}

	var updated model.Player
	err := s.gw.Put(ctx, playersPath+"/"+string(id), draft, &updated)
	if err := finishMutation(ctx, s.gw, playersPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a player and resynchronizes the collection
func (s *Players) Delete(ctx context.Context, id model.PlayerID) error {
	err := s.gw.Delete(ctx, playersPath+"/"+string(id))
	return finishMutation(ctx, s.gw, playersPath, &s.col, err)
}

// UpdateStatistics replaces a player's accumulated statistics
func (s *Players) UpdateStatistics(ctx context.Context, id model.PlayerID, stats model.PlayerStats) (*model.Player, error) {
	var updated model.Player
	err := s.gw.Put(ctx, playersPath+"/"+string(id)+"/statistics", stats, &updated)
	if err := finishMutation(ctx, s.gw, playersPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Items returns the visible collection without fetching
func (s *Players) Items() []model.Player {
	return s.col.visible()
}

// Invalidate forces the next List to re-fetch
func (s *Players) Invalidate() {
	s.col.invalidate()
}

// checkJersey rejects a draft whose jersey number is already worn by a
// different player on the same team, as far as the visible collection
// knows. Players outside the current collection are the server's problem.
func (s *Players) checkJersey(draft model.PlayerDraft, exclude model.PlayerID) error {
	for _, p := range s.col.visible() {
		if p.ID == exclude {
			continue
		}
		if p.TeamID == draft.TeamID && p.JerseyNumber == draft.JerseyNumber {
			return model.ErrJerseyTaken
		}
	}
	return nil
}
