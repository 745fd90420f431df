package store

import (
	"context"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

// Rosters is the client-side store for the roster collection
type Rosters struct {
	gw  *client.Client
	col collection[model.Roster]
}

// NewRosters creates a roster store over the gateway
func NewRosters(gw *client.Client) *Rosters {
	return &Rosters{gw: gw}
}

// List returns the roster collection under f (selections: team, type)
func (s *Rosters) List(ctx context.Context, f filter.Filter) ([]model.Roster, error) {
	return list(ctx, s.gw, rostersPath, &s.col, f)
}

// Get fetches a single roster by id
func (s *Rosters) Get(ctx context.Context, id model.RosterID) (*model.Roster, error) {
	var roster model.Roster
	if err := s.gw.Get(ctx, rostersPath+"/"+string(id), nil, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

// Create submits a new roster and resynchronizes the collection
func (s *Rosters) Create(ctx context.Context, draft model.RosterDraft) (*model.Roster, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created model.Roster
	if err := s.gw.Post(ctx, rostersPath, draft, &created); err != nil {
		return nil, err
	}
	if err := resync(ctx, s.gw, rostersPath, &s.col); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a roster's fields and resynchronizes the collection
func (s *Rosters) Update(ctx context.Context, id model.RosterID, draft model.RosterDraft) (*model.Roster, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var updated model.Roster
	err := s.gw.Put(ctx, rostersPath+"/"+string(id), draft, &updated)
	if err := finishMutation(ctx, s.gw, rostersPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a roster and resynchronizes the collection
func (s *Rosters) Delete(ctx context.Context, id model.RosterID) error {
	err := s.gw.Delete(ctx, rostersPath+"/"+string(id))
	return finishMutation(ctx, s.gw, rostersPath, &s.col, err)
}

// AddPlayer adds a player to a roster's membership set
func (s *Rosters) AddPlayer(ctx context.Context, id model.RosterID, playerID model.PlayerID) (*model.Roster, error) {
	body := map[string]model.PlayerID{"player_id": playerID}

	var updated model.Roster
	err := s.gw.Put(ctx, rostersPath+"/"+string(id)+"/players", body, &updated)
	if err := finishMutation(ctx, s.gw, rostersPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemovePlayer removes a player from a roster's membership set
func (s *Rosters) RemovePlayer(ctx context.Context, id model.RosterID, playerID model.PlayerID) error {
	err := s.gw.Delete(ctx, rostersPath+"/"+string(id)+"/players/"+string(playerID))
	return finishMutation(ctx, s.gw, rostersPath, &s.col, err)
}

// Items returns the visible collection without fetching
func (s *Rosters) Items() []model.Roster {
	return s.col.visible()
}

// Invalidate forces the next List to re-fetch
func (s *Rosters) Invalidate() {
	s.col.invalidate()
}
