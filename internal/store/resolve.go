package store

import (
	"fmt"

	"github.com/mfreeman/rosterhub/internal/model"
)

// Directory resolves team references into display data using the most
// recently fetched team collection. A reference that cannot be resolved
// (team deleted, or outside the fetched set) degrades gracefully: the
// lookup reports absence rather than failing.
type Directory struct {
	teams map[model.TeamID]model.Team
}

// NewDirectory builds a resolver over a team snapshot
func NewDirectory(teams []model.Team) Directory {
	m := make(map[model.TeamID]model.Team, len(teams))
	for _, t := range teams {
		m[t.ID] = t
	}
	return Directory{teams: m}
}

// Team looks up a team by reference
func (d Directory) Team(id model.TeamID) (model.Team, bool) {
	t, ok := d.teams[id]
	return t, ok
}

// TeamLabel returns "name (sport)" for display, or "" when the
// reference is dangling.
func (d Directory) TeamLabel(id model.TeamID) string {
	t, ok := d.teams[id]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Sport)
}
