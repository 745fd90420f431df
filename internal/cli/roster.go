package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newRosterListCmd())
	cmd.AddCommand(newRosterGetCmd())
	cmd.AddCommand(newRosterCreateCmd())
	cmd.AddCommand(newRosterUpdateCmd())
	cmd.AddCommand(newRosterDeleteCmd())
	cmd.AddCommand(newRosterAddPlayerCmd())
	cmd.AddCommand(newRosterRemovePlayerCmd())

	return cmd
}

func newRosterListCmd() *cobra.Command {
	var team, rosterType string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List rosters",
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := filter.New().
				With(filter.KeyTeam, team).
				With(filter.KeyType, rosterType)

			result, err := rosters.List(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team id")
	cmd.Flags().StringVar(&rosterType, "type", "", "Filter by type: active, injured, suspended, reserve, starting")

	return cmd
}

func newRosterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <roster-id>",
		Short:   "Show a roster",
		Args:    cobra.ExactArgs(1),
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := rosters.Get(cmd.Context(), model.RosterID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*roster)
			return nil
		},
	}
}

// rosterDraftFlags binds the roster draft fields as flags
func rosterDraftFlags(cmd *cobra.Command, draft *model.RosterDraft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "Roster name (required)")
	cmd.Flags().StringVar((*string)(&draft.TeamID), "team", "", "Team id (required)")
	cmd.Flags().StringVar((*string)(&draft.Type), "type", string(model.RosterActive), "Type: active, injured, suspended, reserve, starting")
	cmd.Flags().StringVar(&draft.Season, "season", "", "Season (required)")
	cmd.Flags().StringVar(&draft.Notes, "notes", "", "Notes")
}

func markRosterDraftRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("season")
}

func newRosterCreateCmd() *cobra.Command {
	var draft model.RosterDraft

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a roster",
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := rosters.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*roster)
			return nil
		},
	}

	rosterDraftFlags(cmd, &draft)
	markRosterDraftRequired(cmd)

	return cmd
}

func newRosterUpdateCmd() *cobra.Command {
	var draft model.RosterDraft

	cmd := &cobra.Command{
		Use:     "update <roster-id>",
		Short:   "Update a roster",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := rosters.Update(cmd.Context(), model.RosterID(args[0]), draft)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*roster)
			return nil
		},
	}

	rosterDraftFlags(cmd, &draft)
	markRosterDraftRequired(cmd)

	return cmd
}

func newRosterDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <roster-id>",
		Short:   "Delete a roster",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, yes, fmt.Sprintf("Delete roster %s?", args[0])) {
				return nil
			}

			if err := rosters.Delete(cmd.Context(), model.RosterID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Roster deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newRosterAddPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-player <roster-id> <player-id>",
		Short:   "Add a player to a roster",
		Args:    cobra.ExactArgs(2),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := rosters.AddPlayer(cmd.Context(),
				model.RosterID(args[0]), model.PlayerID(args[1]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output).WithDirectory(teamDirectory(cmd.Context()))
			out.Print(*roster)
			return nil
		},
	}
}

func newRosterRemovePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove-player <roster-id> <player-id>",
		Short:   "Remove a player from a roster",
		Args:    cobra.ExactArgs(2),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := rosters.RemovePlayer(cmd.Context(),
				model.RosterID(args[0]), model.PlayerID(args[1]))
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Player removed from roster")
			return nil
		},
	}
}
