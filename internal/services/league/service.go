package league

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// Service owns the team, player, roster and game domain rules.
// Team records and membership listings are derived on read, so they
// always reflect current players and completed games.
type Service struct {
	storage storage.Storage
	clock   clockwork.Clock
}

// New creates a new league Service
func New(storage storage.Storage, clock clockwork.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Team operations

// CreateTeam validates the draft and persists a new team
func (s *Service) CreateTeam(ctx context.Context, draft model.TeamDraft, coachID model.UserID) (*model.Team, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	team := &model.Team{
		ID:          model.TeamID("team_" + uuid.NewString()),
		Name:        draft.Name,
		Sport:       draft.Sport,
		Season:      draft.Season,
		Division:    draft.Division,
		Description: draft.Description,
		CoachID:     coachID,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return s.enrichTeam(ctx, team)
}

// GetTeam returns a team with its derived record and player listing
func (s *Service) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	team, err := s.storage.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrichTeam(ctx, team)
}

// ListTeams returns all teams with derived records
func (s *Service) ListTeams(ctx context.Context) ([]*model.Team, error) {
	teams, err := s.storage.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	enriched := make([]*model.Team, 0, len(teams))
	for _, team := range teams {
		t, err := s.enrichTeam(ctx, team)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, t)
	}
	return enriched, nil
}

// UpdateTeam validates the draft and applies it to an existing team
func (s *Service) UpdateTeam(ctx context.Context, id model.TeamID, draft model.TeamDraft) (*model.Team, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	team, err := s.storage.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Name = draft.Name
	team.Sport = draft.Sport
	team.Season = draft.Season
	team.Division = draft.Division
	team.Description = draft.Description

	if err := s.storage.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return s.enrichTeam(ctx, team)
}

// DeleteTeam removes a team. Teams referenced by players, rosters or
// games cannot be deleted.
func (s *Service) DeleteTeam(ctx context.Context, id model.TeamID) error {
	if _, err := s.storage.GetTeam(ctx, id); err != nil {
		return err
	}

	players, err := s.storage.ListPlayers(ctx, storage.PlayerFilter{TeamID: id})
	if err != nil {
		return err
	}
	if len(players) > 0 {
		return model.ErrTeamInUse
	}

	rosters, err := s.storage.ListRosters(ctx, storage.RosterFilter{TeamID: id})
	if err != nil {
		return err
	}
	if len(rosters) > 0 {
		return model.ErrTeamInUse
	}

	games, err := s.storage.ListGames(ctx, storage.GameFilter{TeamID: id})
	if err != nil {
		return err
	}
	if len(games) > 0 {
		return model.ErrTeamInUse
	}

	return s.storage.DeleteTeam(ctx, id)
}

// enrichTeam fills the derived fields: the win/loss record from
// completed games and the IDs of players currently on the team
func (s *Service) enrichTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	players, err := s.storage.ListPlayers(ctx, storage.PlayerFilter{TeamID: team.ID})
	if err != nil {
		return nil, err
	}
	team.PlayerIDs = make([]model.PlayerID, 0, len(players))
	for _, p := range players {
		team.PlayerIDs = append(team.PlayerIDs, p.ID)
	}

	games, err := s.storage.ListGames(ctx, storage.GameFilter{TeamID: team.ID, Status: model.GameCompleted})
	if err != nil {
		return nil, err
	}
	record := model.TeamRecord{}
	for _, g := range games {
		if g.Score == nil {
			continue
		}
		record.GoalsFor += g.Score.Team
		record.GoalsAgainst += g.Score.Opponent
		switch g.Score.Result() {
		case model.ResultWin:
			record.Wins++
		case model.ResultLoss:
			record.Losses++
		case model.ResultDraw:
			record.Draws++
		}
	}
	team.Record = record

	return team, nil
}

// Player operations

// CreatePlayer validates the draft, checks the team exists and the
// jersey number is free, then persists the player
func (s *Service) CreatePlayer(ctx context.Context, draft model.PlayerDraft) (*model.Player, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetTeam(ctx, draft.TeamID); err != nil {
		return nil, err
	}
	if err := s.checkJersey(ctx, draft.TeamID, draft.JerseyNumber, ""); err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:           model.PlayerID("player_" + uuid.NewString()),
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Email:        draft.Email,
		Phone:        draft.Phone,
		Position:     draft.Position,
		DateOfBirth:  draft.DateOfBirth,
		JerseyNumber: draft.JerseyNumber,
		TeamID:       draft.TeamID,
		Height:       draft.Height,
		Weight:       draft.Weight,
		Status:       draft.Status,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// GetPlayer returns a single player
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// ListPlayers returns players matching the filter
func (s *Service) ListPlayers(ctx context.Context, f storage.PlayerFilter) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx, f)
}

// UpdatePlayer validates the draft and applies it to an existing player
func (s *Service) UpdatePlayer(ctx context.Context, id model.PlayerID, draft model.PlayerDraft) (*model.Player, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.storage.GetTeam(ctx, draft.TeamID); err != nil {
		return nil, err
	}
	if err := s.checkJersey(ctx, draft.TeamID, draft.JerseyNumber, id); err != nil {
		return nil, err
	}

	player.FirstName = draft.FirstName
	player.LastName = draft.LastName
	player.Email = draft.Email
	player.Phone = draft.Phone
	player.Position = draft.Position
	player.DateOfBirth = draft.DateOfBirth
	player.JerseyNumber = draft.JerseyNumber
	player.TeamID = draft.TeamID
	player.Height = draft.Height
	player.Weight = draft.Weight
	player.Status = draft.Status

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// DeletePlayer removes a player and drops them from any rosters.
// Membership is not limited to the player's own team, so the scrub
// walks every roster.
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.storage.GetPlayer(ctx, id); err != nil {
		return err
	}

	rosters, err := s.storage.ListRosters(ctx, storage.RosterFilter{})
	if err != nil {
		return err
	}
	for _, roster := range rosters {
		if !roster.HasPlayer(id) {
			continue
		}
		roster.PlayerIDs = removePlayerID(roster.PlayerIDs, id)
		if err := s.storage.SaveRoster(ctx, roster); err != nil {
			return err
		}
	}

	return s.storage.DeletePlayer(ctx, id)
}

// UpdatePlayerStats replaces a player's statistics
func (s *Service) UpdatePlayerStats(ctx context.Context, id model.PlayerID, stats model.PlayerStats) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	player.Stats = stats

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// checkJersey ensures no other player on the team wears the number
func (s *Service) checkJersey(ctx context.Context, teamID model.TeamID, number int, exclude model.PlayerID) error {
	players, err := s.storage.ListPlayers(ctx, storage.PlayerFilter{TeamID: teamID})
	if err != nil {
		return err
	}
	for _, p := range players {
		if p.ID != exclude && p.JerseyNumber == number {
			return model.ErrJerseyTaken
		}
	}
	return nil
}

// Roster operations

// CreateRoster validates the draft, checks the team exists and persists
// a new roster
func (s *Service) CreateRoster(ctx context.Context, draft model.RosterDraft) (*model.Roster, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetTeam(ctx, draft.TeamID); err != nil {
		return nil, err
	}

	roster := &model.Roster{
		ID:        model.RosterID("roster_" + uuid.NewString()),
		Name:      draft.Name,
		TeamID:    draft.TeamID,
		Type:      draft.Type,
		Season:    draft.Season,
		Notes:     draft.Notes,
		PlayerIDs: []model.PlayerID{},
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// GetRoster returns a single roster
func (s *Service) GetRoster(ctx context.Context, id model.RosterID) (*model.Roster, error) {
	return s.storage.GetRoster(ctx, id)
}

// ListRosters returns rosters matching the filter
func (s *Service) ListRosters(ctx context.Context, f storage.RosterFilter) ([]*model.Roster, error) {
	return s.storage.ListRosters(ctx, f)
}

// UpdateRoster validates the draft and applies it to an existing roster.
// Membership is not part of the draft; it changes only through
// AddRosterPlayer and RemoveRosterPlayer.
func (s *Service) UpdateRoster(ctx context.Context, id model.RosterID, draft model.RosterDraft) (*model.Roster, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	roster, err := s.storage.GetRoster(ctx, id)
	if err != nil {
		return nil, err
	}

	roster.Name = draft.Name
	roster.TeamID = draft.TeamID
	roster.Type = draft.Type
	roster.Season = draft.Season
	roster.Notes = draft.Notes

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// DeleteRoster removes a roster
func (s *Service) DeleteRoster(ctx context.Context, id model.RosterID) error {
	if _, err := s.storage.GetRoster(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteRoster(ctx, id)
}

// AddRosterPlayer adds an existing player to a roster
func (s *Service) AddRosterPlayer(ctx context.Context, id model.RosterID, playerID model.PlayerID) (*model.Roster, error) {
	roster, err := s.storage.GetRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	if roster.HasPlayer(playerID) {
		return nil, model.ErrAlreadyOnRoster
	}

	roster.PlayerIDs = append(roster.PlayerIDs, playerID)

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// RemoveRosterPlayer removes a player from a roster
func (s *Service) RemoveRosterPlayer(ctx context.Context, id model.RosterID, playerID model.PlayerID) (*model.Roster, error) {
	roster, err := s.storage.GetRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	if !roster.HasPlayer(playerID) {
		return nil, model.ErrNotOnRoster
	}

	roster.PlayerIDs = removePlayerID(roster.PlayerIDs, playerID)

	if err := s.storage.SaveRoster(ctx, roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// Game operations

// CreateGame validates the draft, checks the team exists and persists a
// new game. The result is derived from the score, never submitted.
func (s *Service) CreateGame(ctx context.Context, draft model.GameDraft) (*model.Game, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetTeam(ctx, draft.TeamID); err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:        model.GameID("game_" + uuid.NewString()),
		TeamID:    draft.TeamID,
		Opponent:  draft.Opponent,
		Date:      draft.Date,
		Time:      draft.Time,
		Location:  draft.Location,
		HomeGame:  draft.HomeGame,
		Season:    draft.Season,
		Status:    draft.Status,
		Score:     draft.Score,
		CreatedAt: s.clock.Now(),
	}
	deriveResult(game)

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetGame returns a single game
func (s *Service) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// ListGames returns games matching the filter
func (s *Service) ListGames(ctx context.Context, f storage.GameFilter) ([]*model.Game, error) {
	return s.storage.ListGames(ctx, f)
}

// UpdateGame validates the draft and applies it to an existing game
func (s *Service) UpdateGame(ctx context.Context, id model.GameID, draft model.GameDraft) (*model.Game, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.storage.GetTeam(ctx, draft.TeamID); err != nil {
		return nil, err
	}

	game.TeamID = draft.TeamID
	game.Opponent = draft.Opponent
	game.Date = draft.Date
	game.Time = draft.Time
	game.Location = draft.Location
	game.HomeGame = draft.HomeGame
	game.Season = draft.Season
	game.Status = draft.Status
	game.Score = draft.Score
	deriveResult(game)

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteGame removes a game
func (s *Service) DeleteGame(ctx context.Context, id model.GameID) error {
	if _, err := s.storage.GetGame(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteGame(ctx, id)
}

// SetParticipation replaces the participant list of a game. Every
// player must exist.
func (s *Service) SetParticipation(ctx context.Context, id model.GameID, playerIDs []model.PlayerID) (*model.Game, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, playerID := range playerIDs {
		if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
			return nil, err
		}
	}

	game.Participants = playerIDs

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// deriveResult sets Result from the score on completed games and clears
// it otherwise
func deriveResult(game *model.Game) {
	if game.Status == model.GameCompleted && game.Score != nil {
		result := game.Score.Result()
		game.Result = &result
	} else {
		game.Result = nil
	}
}

func removePlayerID(ids []model.PlayerID, id model.PlayerID) []model.PlayerID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
