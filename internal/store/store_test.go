package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/rosterhub/internal/api"
	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/factory"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/testutil"
)

// countingHandler tallies requests by method and path so tests can assert
// how many fetches a store actually issued.
type countingHandler struct {
	mu     sync.Mutex
	counts map[string]int
	next   http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.counts[r.Method+" "+r.URL.Path]++
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func (h *countingHandler) count(method, path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[method+" "+path]
}

type StoreSuite struct {
	suite.Suite
	app     *factory.TestApp
	counter *countingHandler
	srv     *httptest.Server
	gw      *client.Client
	ctx     context.Context
	coachID model.UserID
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.ctx = context.Background()

	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		AuthService:   s.app.AuthService,
		LeagueService: s.app.LeagueService,
	})

	s.counter = &countingHandler{counts: make(map[string]int), next: router}
	s.srv = httptest.NewServer(s.counter)
	s.T().Cleanup(s.srv.Close)

	sess, err := s.app.AuthService.Register(s.ctx, "Casey", "casey@example.com", "password123", model.RoleCoach)
	s.Require().NoError(err)
	s.coachID = sess.UserID

	s.gw = client.New(s.srv.URL, client.StaticToken(sess.Token))
}

// createTeam seeds a team directly through the service, bypassing the
// store under test.
func (s *StoreSuite) createTeam(name string) *model.Team {
	team, err := s.app.LeagueService.CreateTeam(s.ctx, model.TeamDraft{
		Name: name, Sport: model.SportSoccer, Season: "2026",
	}, s.coachID)
	s.Require().NoError(err)
	return team
}

func (s *StoreSuite) createPlayer(teamID model.TeamID, last string, jersey int, status model.PlayerStatus) *model.Player {
	player, err := s.app.LeagueService.CreatePlayer(s.ctx, model.PlayerDraft{
		FirstName: "Jo", LastName: last, Position: "forward",
		DateOfBirth: "2000-04-15", JerseyNumber: jersey,
		TeamID: teamID, Status: status,
	})
	s.Require().NoError(err)
	return player
}

func (s *StoreSuite) TestListCachesUntilFilterChanges() {
	team := s.createTeam("Rovers")
	s.createPlayer(team.ID, "Keller", 9, model.PlayerActive)

	players := NewPlayers(s.gw)
	f := filter.New().With(filter.KeyTeam, string(team.ID))

	first, err := players.List(s.ctx, f)
	s.Require().NoError(err)
	s.Len(first, 1)
	s.Equal(1, s.counter.count(http.MethodGet, "/api/v1/players"))

	// Same filter is served from the collection
	second, err := players.List(s.ctx, f)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, s.counter.count(http.MethodGet, "/api/v1/players"))

	// A different composition re-fetches
	_, err = players.List(s.ctx, f.With(filter.KeyStatus, "injured"))
	s.Require().NoError(err)
	s.Equal(2, s.counter.count(http.MethodGet, "/api/v1/players"))

	// Returning to the earlier composition re-fetches again: only the
	// most recent result is cached
	_, err = players.List(s.ctx, f)
	s.Require().NoError(err)
	s.Equal(3, s.counter.count(http.MethodGet, "/api/v1/players"))
}

func (s *StoreSuite) TestFilterSelectionsCombine() {
	team := s.createTeam("Rovers")
	other := s.createTeam("City")
	s.createPlayer(team.ID, "Keller", 9, model.PlayerActive)
	s.createPlayer(team.ID, "Birch", 1, model.PlayerInjured)
	s.createPlayer(other.ID, "Mills", 9, model.PlayerActive)

	players := NewPlayers(s.gw)
	f := filter.New().
		With(filter.KeyTeam, string(team.ID)).
		With(filter.KeyStatus, string(model.PlayerActive))

	got, err := players.List(s.ctx, f)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Keller", got[0].LastName)
}

func (s *StoreSuite) TestCreateResynchronizes() {
	teams := NewTeams(s.gw)

	_, err := teams.List(s.ctx, filter.New())
	s.Require().NoError(err)

	created, err := teams.Create(s.ctx, model.TeamDraft{
		Name: "Rovers", Sport: model.SportSoccer, Season: "2026",
	})
	s.Require().NoError(err)

	// The collection was refreshed as part of the mutation; no further
	// fetch is needed for the new entity to be visible
	gets := s.counter.count(http.MethodGet, "/api/v1/teams")
	items := teams.Items()
	s.Require().Len(items, 1)
	s.Equal(created.ID, items[0].ID)

	listed, err := teams.List(s.ctx, filter.New())
	s.Require().NoError(err)
	s.Len(listed, 1)
	s.Equal(gets, s.counter.count(http.MethodGet, "/api/v1/teams"))
}

func (s *StoreSuite) TestDeleteRemovesFromCollection() {
	teams := NewTeams(s.gw)

	a, err := teams.Create(s.ctx, model.TeamDraft{Name: "Rovers", Sport: model.SportSoccer, Season: "2026"})
	s.Require().NoError(err)
	b, err := teams.Create(s.ctx, model.TeamDraft{Name: "City", Sport: model.SportSoccer, Season: "2026"})
	s.Require().NoError(err)

	s.Require().NoError(teams.Delete(s.ctx, a.ID))

	items := teams.Items()
	s.Require().Len(items, 1)
	s.Equal(b.ID, items[0].ID)
}

func (s *StoreSuite) TestNotFoundMutationResynchronizes() {
	team := s.createTeam("Rovers")
	s.createPlayer(team.ID, "Keller", 9, model.PlayerActive)

	players := NewPlayers(s.gw)
	_, err := players.List(s.ctx, filter.New())
	s.Require().NoError(err)
	before := s.counter.count(http.MethodGet, "/api/v1/players")

	_, err = players.Update(s.ctx, "player_missing", model.PlayerDraft{
		FirstName: "Jo", LastName: "Keller", Position: "forward",
		DateOfBirth: "2000-04-15", JerseyNumber: 10,
		TeamID: team.ID, Status: model.PlayerActive,
	})
	s.Require().Error(err)
	s.True(client.IsKind(err, client.KindNotFound))

	// The collection was refreshed even though the mutation failed
	s.Equal(before+1, s.counter.count(http.MethodGet, "/api/v1/players"))
}

func (s *StoreSuite) TestJerseyGuardChecksVisibleCollection() {
	team := s.createTeam("Rovers")
	s.createPlayer(team.ID, "Keller", 9, model.PlayerActive)

	players := NewPlayers(s.gw)
	_, err := players.List(s.ctx, filter.New())
	s.Require().NoError(err)

	_, err = players.Create(s.ctx, model.PlayerDraft{
		FirstName: "Sam", LastName: "Birch", Position: "forward",
		DateOfBirth: "1998-11-30", JerseyNumber: 9,
		TeamID: team.ID, Status: model.PlayerActive,
	})
	s.Require().ErrorIs(err, model.ErrJerseyTaken)

	// Rejected locally; nothing was sent
	s.Equal(0, s.counter.count(http.MethodPost, "/api/v1/players"))
}

func (s *StoreSuite) TestGameScoreGuard() {
	team := s.createTeam("Rovers")
	games := NewGames(s.gw)

	_, err := games.Create(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-04-04",
		Season: "2026", Status: model.GameScheduled,
		Score: &model.Score{Team: 1, Opponent: 0},
	})
	s.Require().ErrorIs(err, model.ErrScoreRequiresCompletion)

	_, err = games.Create(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-04-04",
		Season: "2026", Status: model.GameCompleted,
	})
	s.Require().ErrorIs(err, model.ErrCompletionRequiresScore)

	s.Equal(0, s.counter.count(http.MethodPost, "/api/v1/games"))
}

func (s *StoreSuite) TestRosterMembership() {
	team := s.createTeam("Rovers")
	player := s.createPlayer(team.ID, "Keller", 9, model.PlayerActive)

	rosters := NewRosters(s.gw)
	roster, err := rosters.Create(s.ctx, model.RosterDraft{
		Name: "Matchday squad", TeamID: team.ID,
		Type: model.RosterActive, Season: "2026",
	})
	s.Require().NoError(err)

	updated, err := rosters.AddPlayer(s.ctx, roster.ID, player.ID)
	s.Require().NoError(err)
	s.True(updated.HasPlayer(player.ID))

	// Adding again conflicts
	_, err = rosters.AddPlayer(s.ctx, roster.ID, player.ID)
	s.Require().Error(err)
	s.True(client.IsKind(err, client.KindValidation))

	s.Require().NoError(rosters.RemovePlayer(s.ctx, roster.ID, player.ID))

	got, err := rosters.Get(s.ctx, roster.ID)
	s.Require().NoError(err)
	s.False(got.HasPlayer(player.ID))
}

func (s *StoreSuite) TestDirectoryResolvesTeamReferences() {
	team := s.createTeam("Rovers")

	teams := NewTeams(s.gw)
	_, err := teams.List(s.ctx, filter.New())
	s.Require().NoError(err)

	dir := teams.Directory()
	s.Equal("Rovers (soccer)", dir.TeamLabel(team.ID))

	// A dangling reference degrades to absence
	_, ok := dir.Team("team_missing")
	s.False(ok)
	s.Empty(dir.TeamLabel("team_missing"))
}

// Stale responses must never overwrite newer ones, regardless of arrival
// order.
func TestStaleFetchDiscarded(t *testing.T) {
	var col collection[model.Team]

	older := col.begin()
	newer := col.begin()

	applied := col.commit(newer, filter.New(), []model.Team{{ID: "team_new"}})
	if !applied {
		t.Fatal("newest fetch should apply")
	}

	applied = col.commit(older, filter.New(), []model.Team{{ID: "team_old"}})
	if applied {
		t.Fatal("superseded fetch must be discarded")
	}

	items := col.visible()
	if len(items) != 1 || items[0].ID != "team_new" {
		t.Fatalf("visible collection corrupted: %+v", items)
	}
}
