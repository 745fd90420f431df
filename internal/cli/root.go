package cli

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfreeman/rosterhub/internal/access"
	"github.com/mfreeman/rosterhub/internal/client"
	"github.com/mfreeman/rosterhub/internal/filter"
	"github.com/mfreeman/rosterhub/internal/session"
	"github.com/mfreeman/rosterhub/internal/store"
)

var (
	cfg      *Config
	gw       *client.Client
	creds    *session.CredentialStore
	sessions *session.Manager
	teams    *store.Teams
	players  *store.Players
	rosters  *store.Rosters
	games    *store.Games
)

// tokenSource prefers an explicitly provided token over the persisted one
type tokenSource struct{}

func (tokenSource) Token() string {
	if cfg.Token != "" {
		return cfg.Token
	}
	return creds.Token()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "rosterhub",
		Short: "CLI tool for the roster hub API",
		Long: `rosterhub is a CLI tool for managing sports teams, players,
rosters, and games through the roster hub JSON API.

Authenticate with 'rosterhub auth login'; the session token is persisted
and reused until it expires or you log out.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			creds, err = session.NewCredentialStore(cfg.TokenFile)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			gw = client.New(cfg.ServerURL, tokenSource{})
			sessions = session.NewManager(gw, creds, logger)

			teams = store.NewTeams(gw)
			players = store.NewPlayers(gw)
			rosters = store.NewRosters(gw)
			games = store.NewGames(gw)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ROSTERHUB_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: ROSTERHUB_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: ROSTERHUB_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// sessionPreRun resolves the persisted credential before an
// authenticated command runs. An explicit --token bypasses the
// credential store, so there is nothing to restore then.
func sessionPreRun(cmd *cobra.Command, _ []string) error {
	_, err := sessions.Restore(cmd.Context())
	return err
}

// mutatorPreRun restores the session and refuses a mutation locally
// when the identity's role cannot pass the server's gate anyway. An
// unknown identity is let through; the server has the final say.
func mutatorPreRun(cmd *cobra.Command, args []string) error {
	identity, err := sessions.Restore(cmd.Context())
	if err != nil {
		return err
	}
	if identity != nil && !access.ForIdentity(identity).CanMutate {
		return errors.New("insufficient permissions: mutations require the admin or coach role")
	}
	return nil
}

// teamDirectory fetches the team collection to resolve team references in
// output. A fetch failure degrades to an empty directory rather than
// failing the command.
func teamDirectory(ctx context.Context) store.Directory {
	if _, err := teams.List(ctx, filter.New()); err != nil {
		return store.NewDirectory(nil)
	}
	return teams.Directory()
}

// confirm prompts for confirmation of a destructive action unless the
// --yes flag bypassed it.
func confirm(cmd *cobra.Command, yes bool, prompt string) bool {
	if yes {
		return true
	}
	cmd.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
