package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameUpdateCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameParticipationCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	var team, status string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List games",
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := filter.New().
				With(filter.KeyTeam, team).
				With(filter.KeyStatus, status)

			result, err := games.List(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team id")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: scheduled, in_progress, completed, cancelled, postponed")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <game-id>",
		Short:   "Show a game",
		Args:    cobra.ExactArgs(1),
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := games.Get(cmd.Context(), model.GameID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*game)
			return nil
		},
	}
}

// gameDraftFlags binds the game draft fields as flags. Score flags use -1
// as "unset" so a legitimate 0-0 can still be submitted.
func gameDraftFlags(cmd *cobra.Command, draft *model.GameDraft, scoreTeam, scoreOpponent *int) {
	cmd.Flags().StringVar((*string)(&draft.TeamID), "team", "", "Team id (required)")
	cmd.Flags().StringVar(&draft.Opponent, "opponent", "", "Opponent name (required)")
	cmd.Flags().StringVar(&draft.Date, "date", "", "Game date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&draft.Time, "time", "", "Kick-off time")
	cmd.Flags().StringVar(&draft.Location, "location", "", "Venue")
	cmd.Flags().BoolVar(&draft.HomeGame, "home", false, "Home game")
	cmd.Flags().StringVar(&draft.Season, "season", "", "Season (required)")
	cmd.Flags().StringVar((*string)(&draft.Status), "status", string(model.GameScheduled), "Status: scheduled, in_progress, completed, cancelled, postponed")
	cmd.Flags().IntVar(scoreTeam, "score-team", -1, "Our final score (completed games only)")
	cmd.Flags().IntVar(scoreOpponent, "score-opponent", -1, "Opponent's final score (completed games only)")
}

func markGameDraftRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("opponent")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("season")
}

// applyScore attaches the score to the draft when both halves were given
func applyScore(draft *model.GameDraft, scoreTeam, scoreOpponent int) error {
	if scoreTeam < 0 && scoreOpponent < 0 {
		return nil
	}
	if scoreTeam < 0 || scoreOpponent < 0 {
		return fmt.Errorf("--score-team and --score-opponent must be given together")
	}
	draft.Score = &model.Score{Team: scoreTeam, Opponent: scoreOpponent}
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var draft model.GameDraft
	var scoreTeam, scoreOpponent int

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a game",
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyScore(&draft, scoreTeam, scoreOpponent); err != nil {
				return err
			}

			game, err := games.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*game)
			return nil
		},
	}

	gameDraftFlags(cmd, &draft, &scoreTeam, &scoreOpponent)
	markGameDraftRequired(cmd)

	return cmd
}

func newGameUpdateCmd() *cobra.Command {
	var draft model.GameDraft
	var scoreTeam, scoreOpponent int

	cmd := &cobra.Command{
		Use:     "update <game-id>",
		Short:   "Update a game",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyScore(&draft, scoreTeam, scoreOpponent); err != nil {
				return err
			}

			game, err := games.Update(cmd.Context(), model.GameID(args[0]), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*game)
			return nil
		},
	}

	gameDraftFlags(cmd, &draft, &scoreTeam, &scoreOpponent)
	markGameDraftRequired(cmd)

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <game-id>",
		Short:   "Delete a game",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, yes, fmt.Sprintf("Delete game %s?", args[0])) {
				return nil
			}

			if err := games.Delete(cmd.Context(), model.GameID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Game deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newGameParticipationCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "participation <game-id> [player-id...]",
		Short:   "Replace the set of players who took part in a game",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			playerIDs := make([]model.PlayerID, 0, len(args)-1)
			for _, arg := range args[1:] {
				playerIDs = append(playerIDs, model.PlayerID(arg))
			}

			game, err := games.UpdateParticipation(cmd.Context(),
				model.GameID(args[0]), model.Participation{PlayerIDs: playerIDs})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*game)
			return nil
		},
	}
}
