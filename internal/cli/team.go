package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/model"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamGetCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamUpdateCmd())
	cmd.AddCommand(newTeamDeleteCmd())

	return cmd
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List teams",
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := teams.List(cmd.Context(), filter.New())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTeamGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <team-id>",
		Short:   "Show a team",
		Args:    cobra.ExactArgs(1),
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := teams.Get(cmd.Context(), model.TeamID(args[0]))
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*team)
			return nil
		},
	}
}

// teamDraftFlags binds the team draft fields as flags
func teamDraftFlags(cmd *cobra.Command, draft *model.TeamDraft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "Team name (required)")
	cmd.Flags().StringVar((*string)(&draft.Sport), "sport", "", "Sport (required)")
	cmd.Flags().StringVar(&draft.Season, "season", "", "Season (required)")
	cmd.Flags().StringVar(&draft.Division, "division", "", "Division")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Description")
}

func newTeamCreateCmd() *cobra.Command {
	var draft model.TeamDraft

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a team",
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := teams.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*team)
			return nil
		},
	}

	teamDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("sport")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func newTeamUpdateCmd() *cobra.Command {
	var draft model.TeamDraft

	cmd := &cobra.Command{
		Use:     "update <team-id>",
		Short:   "Update a team",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := teams.Update(cmd.Context(), model.TeamID(args[0]), draft)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*team)
			return nil
		},
	}

	teamDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("sport")
	_ = cmd.MarkFlagRequired("season")

	return cmd
}

func newTeamDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <team-id>",
		Short:   "Delete a team",
		Args:    cobra.ExactArgs(1),
		PreRunE: mutatorPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd, yes, fmt.Sprintf("Delete team %s?", args[0])) {
				return nil
			}

			if err := teams.Delete(cmd.Context(), model.TeamID(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Team deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
