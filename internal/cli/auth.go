package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/session"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())
	cmd.AddCommand(newAuthProfileCmd())
	cmd.AddCommand(newAuthUsersCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := sessions.Register(cmd.Context(), session.Registration{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     model.Role(role),
			})
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*identity)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "", "Role: admin, coach, member, viewer (default member)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := sessions.Login(cmd.Context(), session.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*identity)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best-effort server-side invalidation; local state clears regardless
			_ = gw.Post(cmd.Context(), "/api/v1/auth/logout", nil, nil)

			if err := sessions.Logout(); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := sessions.Restore(cmd.Context())
			if err != nil {
				return err
			}
			if identity == nil {
				return fmt.Errorf("not logged in")
			}

			NewOutput(cfg.Output).Print(*identity)
			return nil
		},
	}
}

func newAuthUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "users",
		Short:   "List registered accounts (admin only)",
		PreRunE: sessionPreRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			var identities []model.Identity
			if err := gw.Get(cmd.Context(), "/api/v1/auth/users", nil, &identities); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(identities)
			return nil
		},
	}
}

func newAuthProfileCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the current account's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && email == "" {
				return fmt.Errorf("nothing to update: provide --name or --email")
			}

			identity, err := sessions.UpdateProfile(cmd.Context(), model.ProfileUpdate{
				Name:  name,
				Email: email,
			})
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*identity)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")

	return cmd
}
