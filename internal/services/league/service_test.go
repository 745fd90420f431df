package league

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/storage"
	"github.com/mfreeman/rosterhub/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *clockwork.FakeClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) createTeam() *model.Team {
	team, err := s.service.CreateTeam(s.ctx, model.TeamDraft{
		Name:   "Rovers",
		Sport:  model.SportSoccer,
		Season: "2026",
	}, "coach-1")
	s.Require().NoError(err)
	return team
}

func (s *ServiceSuite) createPlayer(teamID model.TeamID, jersey int) *model.Player {
	player, err := s.service.CreatePlayer(s.ctx, model.PlayerDraft{
		FirstName:    "Jo",
		LastName:     "Keller",
		Position:     "forward",
		DateOfBirth:  "2000-04-15",
		JerseyNumber: jersey,
		TeamID:       teamID,
		Status:       model.PlayerActive,
	})
	s.Require().NoError(err)
	return player
}

// Team tests

func (s *ServiceSuite) TestCreateTeamSucceeds() {
	team := s.createTeam()

	s.NotEmpty(team.ID)
	s.Equal("Rovers", team.Name)
	s.Equal(model.UserID("coach-1"), team.CoachID)
	s.Empty(team.PlayerIDs)
	s.Equal(model.TeamRecord{}, team.Record)
}

func (s *ServiceSuite) TestCreateTeamRejectsInvalidDraft() {
	_, err := s.service.CreateTeam(s.ctx, model.TeamDraft{Sport: model.SportSoccer, Season: "2026"}, "coach-1")
	s.ErrorIs(err, model.ErrMissingField)

	_, err = s.service.CreateTeam(s.ctx, model.TeamDraft{Name: "X", Sport: "curling", Season: "2026"}, "coach-1")
	s.ErrorIs(err, model.ErrInvalidSport)
}

func (s *ServiceSuite) TestUpdateTeamAppliesDraft() {
	team := s.createTeam()

	updated, err := s.service.UpdateTeam(s.ctx, team.ID, model.TeamDraft{
		Name:   "Rovers B",
		Sport:  model.SportSoccer,
		Season: "2027",
	})
	s.Require().NoError(err)
	s.Equal("Rovers B", updated.Name)
	s.Equal("2027", updated.Season)
}

func (s *ServiceSuite) TestUpdateTeamNotFound() {
	_, err := s.service.UpdateTeam(s.ctx, "missing", model.TeamDraft{
		Name: "X", Sport: model.SportSoccer, Season: "2026",
	})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestDeleteTeamSucceedsWhenUnreferenced() {
	team := s.createTeam()

	err := s.service.DeleteTeam(s.ctx, team.ID)
	s.Require().NoError(err)

	_, err = s.service.GetTeam(s.ctx, team.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestDeleteTeamRefusedWhilePlayersRemain() {
	team := s.createTeam()
	s.createPlayer(team.ID, 9)

	err := s.service.DeleteTeam(s.ctx, team.ID)
	s.ErrorIs(err, model.ErrTeamInUse)
}

func (s *ServiceSuite) TestDeleteTeamRefusedWhileGamesRemain() {
	team := s.createTeam()
	_, err := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameScheduled,
	})
	s.Require().NoError(err)

	err = s.service.DeleteTeam(s.ctx, team.ID)
	s.ErrorIs(err, model.ErrTeamInUse)
}

func (s *ServiceSuite) TestTeamRecordDerivedFromCompletedGames() {
	team := s.createTeam()

	games := []model.GameDraft{
		{TeamID: team.ID, Opponent: "United", Date: "2026-04-01", Season: "2026",
			Status: model.GameCompleted, Score: &model.Score{Team: 3, Opponent: 1}},
		{TeamID: team.ID, Opponent: "City", Date: "2026-04-08", Season: "2026",
			Status: model.GameCompleted, Score: &model.Score{Team: 0, Opponent: 2}},
		{TeamID: team.ID, Opponent: "Athletic", Date: "2026-04-15", Season: "2026",
			Status: model.GameCompleted, Score: &model.Score{Team: 1, Opponent: 1}},
		{TeamID: team.ID, Opponent: "Wanderers", Date: "2026-04-22", Season: "2026",
			Status: model.GameScheduled},
	}
	for _, draft := range games {
		_, err := s.service.CreateGame(s.ctx, draft)
		s.Require().NoError(err)
	}

	got, err := s.service.GetTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal(model.TeamRecord{
		Wins: 1, Losses: 1, Draws: 1,
		GoalsFor: 4, GoalsAgainst: 4,
	}, got.Record)
}

func (s *ServiceSuite) TestConcurrentTeamReads() {
	team := s.createTeam()
	s.createPlayer(team.ID, 9)
	_, err := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-04-01", Season: "2026",
		Status: model.GameCompleted, Score: &model.Score{Team: 2, Opponent: 0},
	})
	s.Require().NoError(err)

	// Enrichment derives record and membership per read; parallel reads
	// must each see a complete, consistent team
	const readers = 8
	results := make([]*model.Team, readers)
	errs := make([]error, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.service.GetTeam(s.ctx, team.ID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < readers; i++ {
		s.Require().NoError(errs[i])
		s.Equal(1, results[i].Record.Wins)
		s.Len(results[i].PlayerIDs, 1)
	}
}

func (s *ServiceSuite) TestTeamPlayerIDsDerivedFromPlayers() {
	team := s.createTeam()
	p1 := s.createPlayer(team.ID, 7)
	p2 := s.createPlayer(team.ID, 9)

	got, err := s.service.GetTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]model.PlayerID{p1.ID, p2.ID}, got.PlayerIDs)
}

// Player tests

func (s *ServiceSuite) TestCreatePlayerRequiresExistingTeam() {
	_, err := s.service.CreatePlayer(s.ctx, model.PlayerDraft{
		FirstName: "Jo", LastName: "Keller", Position: "forward",
		DateOfBirth: "2000-04-15", JerseyNumber: 9,
		TeamID: "missing", Status: model.PlayerActive,
	})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestCreatePlayerRejectsTakenJersey() {
	team := s.createTeam()
	s.createPlayer(team.ID, 9)

	_, err := s.service.CreatePlayer(s.ctx, model.PlayerDraft{
		FirstName: "Sam", LastName: "Birch", Position: "defender",
		DateOfBirth: "2001-07-02", JerseyNumber: 9,
		TeamID: team.ID, Status: model.PlayerActive,
	})
	s.ErrorIs(err, model.ErrJerseyTaken)
}

func (s *ServiceSuite) TestJerseyFreeOnDifferentTeam() {
	team1 := s.createTeam()
	team2, err := s.service.CreateTeam(s.ctx, model.TeamDraft{
		Name: "United", Sport: model.SportSoccer, Season: "2026",
	}, "coach-1")
	s.Require().NoError(err)

	s.createPlayer(team1.ID, 9)
	s.createPlayer(team2.ID, 9)
}

func (s *ServiceSuite) TestUpdatePlayerKeepingOwnJersey() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)

	updated, err := s.service.UpdatePlayer(s.ctx, player.ID, model.PlayerDraft{
		FirstName: "Jo", LastName: "Keller", Position: "midfielder",
		DateOfBirth: "2000-04-15", JerseyNumber: 9,
		TeamID: team.ID, Status: model.PlayerActive,
	})
	s.Require().NoError(err)
	s.Equal("midfielder", updated.Position)
}

func (s *ServiceSuite) TestUpdatePlayerStats() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)

	updated, err := s.service.UpdatePlayerStats(s.ctx, player.ID, model.PlayerStats{
		GamesPlayed: 10, Goals: 4, Assists: 2,
	})
	s.Require().NoError(err)
	s.Equal(4, updated.Stats.Goals)

	got, err := s.service.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(10, got.Stats.GamesPlayed)
}

func (s *ServiceSuite) TestDeletePlayerDropsRosterMembership() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)

	roster, err := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})
	s.Require().NoError(err)
	_, err = s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)
	s.Require().NoError(err)

	err = s.service.DeletePlayer(s.ctx, player.ID)
	s.Require().NoError(err)

	got, err := s.service.GetRoster(s.ctx, roster.ID)
	s.Require().NoError(err)
	s.False(got.HasPlayer(player.ID))
}

func (s *ServiceSuite) TestDeletePlayerDropsCrossTeamRosterMembership() {
	team := s.createTeam()
	other, err := s.service.CreateTeam(s.ctx, model.TeamDraft{
		Name: "United", Sport: model.SportSoccer, Season: "2026",
	}, "coach-1")
	s.Require().NoError(err)

	player := s.createPlayer(team.ID, 9)
	roster, err := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Guest squad", TeamID: other.ID, Type: model.RosterActive, Season: "2026",
	})
	s.Require().NoError(err)
	_, err = s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeletePlayer(s.ctx, player.ID))

	got, err := s.service.GetRoster(s.ctx, roster.ID)
	s.Require().NoError(err)
	s.False(got.HasPlayer(player.ID))
}

// Roster tests

func (s *ServiceSuite) TestCreateRosterRequiresExistingTeam() {
	_, err := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: "missing", Type: model.RosterActive, Season: "2026",
	})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestAddRosterPlayer() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)
	roster, err := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})
	s.Require().NoError(err)

	updated, err := s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)
	s.Require().NoError(err)
	s.True(updated.HasPlayer(player.ID))
}

func (s *ServiceSuite) TestAddRosterPlayerRejectsDuplicate() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)
	roster, _ := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})
	_, _ = s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)

	_, err := s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)
	s.ErrorIs(err, model.ErrAlreadyOnRoster)
}

func (s *ServiceSuite) TestAddRosterPlayerRequiresExistingPlayer() {
	team := s.createTeam()
	roster, _ := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})

	_, err := s.service.AddRosterPlayer(s.ctx, roster.ID, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestRemoveRosterPlayer() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)
	roster, _ := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})
	_, _ = s.service.AddRosterPlayer(s.ctx, roster.ID, player.ID)

	updated, err := s.service.RemoveRosterPlayer(s.ctx, roster.ID, player.ID)
	s.Require().NoError(err)
	s.False(updated.HasPlayer(player.ID))
}

func (s *ServiceSuite) TestRemoveRosterPlayerNotOnRoster() {
	team := s.createTeam()
	player := s.createPlayer(team.ID, 9)
	roster, _ := s.service.CreateRoster(s.ctx, model.RosterDraft{
		Name: "Matchday", TeamID: team.ID, Type: model.RosterActive, Season: "2026",
	})

	_, err := s.service.RemoveRosterPlayer(s.ctx, roster.ID, player.ID)
	s.ErrorIs(err, model.ErrNotOnRoster)
}

// Game tests

func (s *ServiceSuite) TestCreateGameDerivesResult() {
	team := s.createTeam()

	game, err := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameCompleted,
		Score: &model.Score{Team: 2, Opponent: 1},
	})
	s.Require().NoError(err)
	s.Require().NotNil(game.Result)
	s.Equal(model.ResultWin, *game.Result)
}

func (s *ServiceSuite) TestCreateGameRejectsScoreWithoutCompletion() {
	team := s.createTeam()

	_, err := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameScheduled,
		Score: &model.Score{Team: 2, Opponent: 1},
	})
	s.ErrorIs(err, model.ErrScoreRequiresCompletion)
}

func (s *ServiceSuite) TestCreateGameRejectsCompletionWithoutScore() {
	team := s.createTeam()

	_, err := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameCompleted,
	})
	s.ErrorIs(err, model.ErrCompletionRequiresScore)
}

func (s *ServiceSuite) TestUpdateGameClearsResultWhenReverted() {
	team := s.createTeam()
	game, _ := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameCompleted,
		Score: &model.Score{Team: 2, Opponent: 1},
	})

	updated, err := s.service.UpdateGame(s.ctx, game.ID, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-19",
		Season: "2026", Status: model.GamePostponed,
	})
	s.Require().NoError(err)
	s.Nil(updated.Score)
	s.Nil(updated.Result)
}

func (s *ServiceSuite) TestSetParticipation() {
	team := s.createTeam()
	p1 := s.createPlayer(team.ID, 7)
	p2 := s.createPlayer(team.ID, 9)
	game, _ := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameScheduled,
	})

	updated, err := s.service.SetParticipation(s.ctx, game.ID, []model.PlayerID{p1.ID, p2.ID})
	s.Require().NoError(err)
	s.Len(updated.Participants, 2)
}

func (s *ServiceSuite) TestSetParticipationRequiresExistingPlayers() {
	team := s.createTeam()
	game, _ := s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameScheduled,
	})

	_, err := s.service.SetParticipation(s.ctx, game.ID, []model.PlayerID{"missing"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListGamesFiltered() {
	team := s.createTeam()
	_, _ = s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "United", Date: "2026-09-12",
		Season: "2026", Status: model.GameScheduled,
	})
	_, _ = s.service.CreateGame(s.ctx, model.GameDraft{
		TeamID: team.ID, Opponent: "City", Date: "2026-09-19",
		Season: "2026", Status: model.GameCompleted,
		Score: &model.Score{Team: 1, Opponent: 0},
	})

	games, err := s.service.ListGames(s.ctx, storage.GameFilter{Status: model.GameCompleted})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("City", games[0].Opponent)
}
