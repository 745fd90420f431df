package store

import (
	"context"

	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

// Teams is the client-side store for the team collection
type Teams struct {
	gw  *client.Client
	col collection[model.Team]
}

// NewTeams creates a team store over the gateway
func NewTeams(gw *client.Client) *Teams {
	return &Teams{gw: gw}
}

// List returns the team collection under f, re-fetching only when the
// composed query changed since the last fetch.
func (s *Teams) List(ctx context.Context, f filter.Filter) ([]model.Team, error) {
	return list(ctx, s.gw, teamsPath, &s.col, f)
}

// Get fetches a single team by id
func (s *Teams) Get(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var team model.Team
	if err := s.gw.Get(ctx, teamsPath+"/"+string(id), nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Create submits a new team and resynchronizes the collection before
// returning, so a subsequent List observes the new entity.
func (s *Teams) Create(ctx context.Context, draft model.TeamDraft) (*model.Team, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created model.Team
	if err := s.gw.Post(ctx, teamsPath, draft, &created); err != nil {
		return nil, err
	}
	if err := resync(ctx, s.gw, teamsPath, &s.col); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a team's fields and resynchronizes the collection
func (s *Teams) Update(ctx context.Context, id model.TeamID, draft model.TeamDraft) (*model.Team, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var updated model.Team
	err := s.gw.Put(ctx, teamsPath+"/"+string(id), draft, &updated)
	if err := finishMutation(ctx, s.gw, teamsPath, &s.col, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a team and resynchronizes the collection. Callers must
// have confirmed intent first; this issues the request unconditionally.
func (s *Teams) Delete(ctx context.Context, id model.TeamID) error {
	err := s.gw.Delete(ctx, teamsPath+"/"+string(id))
	return finishMutation(ctx, s.gw, teamsPath, &s.col, err)
}

// Items returns the visible collection without fetching
func (s *Teams) Items() []model.Team {
	return s.col.visible()
}

// Invalidate forces the next List to re-fetch
func (s *Teams) Invalidate() {
	s.col.invalidate()
}

// Directory builds a resolver over the visible team collection
func (s *Teams) Directory() Directory {
	return NewDirectory(s.col.visible())
}
