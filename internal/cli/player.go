package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerStatsCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	var team, status string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List players",
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := filter.New().
				With(filter.KeyTeam, team).
				With(filter.KeyStatus, status)

			result, err := players.List(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team id")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: active, injured, suspended, inactive")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <player-id>",
		Short:   "Show a player",
		Args:    cobra.ExactArgs(1),
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := players.Get(cmd.Context(), model.PlayerID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*player)
			return nil
		},
	}
}

// playerDraftFlags binds the player draft fields as flags
func playerDraftFlags(cmd *cobra.Command, draft *model.PlayerDraft) {
	cmd.Flags().StringVar(&draft.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&draft.LastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&draft.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&draft.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&draft.DateOfBirth, "dob", "", "Date of birth, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&draft.Position, "position", "", "Playing position (required)")
	cmd.Flags().IntVar(&draft.JerseyNumber, "jersey", 0, "Jersey number, 0-99")
	cmd.Flags().StringVar((*string)(&draft.TeamID), "team", "", "Team id (required)")
	cmd.Flags().StringVar(&draft.Height, "height", "", "Height")
	cmd.Flags().StringVar(&draft.Weight, "weight", "", "Weight")
	cmd.Flags().StringVar((*string)(&draft.Status), "status", string(model.PlayerActive), "Status: active, injured, suspended, inactive")
}

func markPlayerDraftRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("dob")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("team")
}

func newPlayerCreateCmd() *cobra.Command {
	var draft model.PlayerDraft

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a player",
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := players.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*player)
			return nil
		},
	}

	playerDraftFlags(cmd, &draft)
	markPlayerDraftRequired(cmd)

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var draft model.PlayerDraft

	cmd := &cobra.Command{
		Use:     "update <player-id>",
		Short:   "Update a player",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := players.Update(cmd.Context(), model.PlayerID(args[0]), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*player)
			return nil
		},
	}

	playerDraftFlags(cmd, &draft)
	markPlayerDraftRequired(cmd)

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <player-id>",
		Short:   "Delete a player",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, yes, fmt.Sprintf("Delete player %s?", args[0])) {
				return nil
			}

			if err := players.Delete(cmd.Context(), model.PlayerID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Player deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	var stats model.PlayerStats

	cmd := &cobra.Command{
		Use:     "stats <player-id>",
		Short:   "Replace a player's statistics",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := players.UpdateStatistics(cmd.Context(), model.PlayerID(args[0]), stats)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*player)
			return nil
		},
	}

	cmd.Flags().IntVar(&stats.GamesPlayed, "games", 0, "Games played")
	cmd.Flags().IntVar(&stats.Goals, "goals", 0, "Goals scored")
	cmd.Flags().IntVar(&stats.Assists, "assists", 0, "Assists")
	cmd.Flags().IntVar(&stats.YellowCards, "yellow", 0, "Yellow cards")
	cmd.Flags().IntVar(&stats.RedCards, "red", 0, "Red cards")

	return cmd
}
