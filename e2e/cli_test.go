package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman/rosterhub/internal/api"
	"github.com/mfreeman/rosterhub/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "rosterhub-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rosterhub")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		LeagueService: app.LeagueService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing

type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type teamResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sport  string `json:"sport"`
	Season string `json:"season"`
	Record struct {
		Wins     int `json:"wins"`
		Losses   int `json:"losses"`
		GoalsFor int `json:"goals_for"`
	} `json:"record"`
	PlayerIDs []string `json:"player_ids"`
}

type playerResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	JerseyNumber int    `json:"jersey_number"`
	TeamID       string `json:"team_id"`
	Status       string `json:"status"`
}

type rosterResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TeamID    string   `json:"team_id"`
	Type      string   `json:"type"`
	PlayerIDs []string `json:"player_ids"`
}

type gameResponse struct {
	ID       string `json:"id"`
	TeamID   string `json:"team_id"`
	Opponent string `json:"opponent"`
	Status   string `json:"status"`
	Score    *struct {
		Team     int `json:"team"`
		Opponent int `json:"opponent"`
	} `json:"score"`
	Result       *string  `json:"result"`
	Participants []string `json:"participants"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register a coach account
	output, err := cli.run("auth", "register",
		"--name", "Casey", "--email", "casey@example.com",
		"--password", "password123", "--role", "coach")
	require.NoError(t, err, "output: %s", output)

	var identity identityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &identity))
	assert.Equal(t, "Casey", identity.Name)
	assert.Equal(t, "coach", identity.Role)

	// whoami uses the token persisted in the token file
	output, err = cli.run("auth", "whoami")
	require.NoError(t, err, "output: %s", output)

	var me identityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, identity.ID, me.ID)

	// Logout clears the session
	_, err = cli.run("auth", "logout")
	require.NoError(t, err)

	output, err = cli.run("auth", "whoami")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not logged in")

	// Login again
	output, err = cli.run("auth", "login",
		"--email", "casey@example.com", "--password", "password123")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, identity.ID, me.ID)
}

func TestCLI_SeasonFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register a coach
	output, err := cli.run("auth", "register",
		"--name", "Casey", "--email", "casey@example.com",
		"--password", "password123", "--role", "coach")
	require.NoError(t, err, "output: %s", output)

	// Create a team
	output, err = cli.run("team", "create",
		"--name", "Rovers", "--sport", "soccer", "--season", "2026")
	require.NoError(t, err, "output: %s", output)

	var team teamResponse
	require.NoError(t, json.Unmarshal([]byte(output), &team))
	assert.Equal(t, "Rovers", team.Name)
	teamID := team.ID

	// Sign a player
	output, err = cli.run("player", "create",
		"--first-name", "Jo", "--last-name", "Keller",
		"--dob", "2000-04-15", "--position", "forward",
		"--jersey", "9", "--team", teamID)
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, 9, player.JerseyNumber)
	assert.Equal(t, "active", player.Status)

	// Build a roster and add the player
	output, err = cli.run("roster", "create",
		"--name", "Matchday squad", "--team", teamID, "--season", "2026")
	require.NoError(t, err, "output: %s", output)

	var roster rosterResponse
	require.NoError(t, json.Unmarshal([]byte(output), &roster))

	output, err = cli.run("roster", "add-player", roster.ID, player.ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &roster))
	assert.Contains(t, roster.PlayerIDs, player.ID)

	// Record a completed game
	output, err = cli.run("game", "create",
		"--team", teamID, "--opponent", "United",
		"--date", "2026-04-04", "--season", "2026",
		"--status", "completed", "--score-team", "2", "--score-opponent", "0")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.NotNil(t, game.Result)
	assert.Equal(t, "win", *game.Result)

	// Track participation
	output, err = cli.run("game", "participation", game.ID, player.ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Contains(t, game.Participants, player.ID)

	// Team view reflects the derived record and squad
	output, err = cli.run("team", "get", teamID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &team))
	assert.Equal(t, 1, team.Record.Wins)
	assert.Equal(t, 2, team.Record.GoalsFor)
	assert.Contains(t, team.PlayerIDs, player.ID)

	// Deleting the team is refused while season data references it
	output, err = cli.run("team", "delete", teamID, "--yes")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "still has")

	// Deleting the game is fine
	output, err = cli.run("game", "delete", game.ID, "--yes")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_RoleEnforcement(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Coach creates a team
	_, err := cli.run("auth", "register",
		"--name", "Casey", "--email", "casey@example.com",
		"--password", "password123", "--role", "coach")
	require.NoError(t, err)

	output, err := cli.run("team", "create",
		"--name", "Rovers", "--sport", "soccer", "--season", "2026")
	require.NoError(t, err, "output: %s", output)

	// A viewer registers with a separate token file
	viewer := &cliRunner{
		binaryPath: cli.binaryPath,
		serverURL:  cli.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
	_, err = viewer.run("auth", "register",
		"--name", "Val", "--email", "val@example.com",
		"--password", "password123", "--role", "viewer")
	require.NoError(t, err)

	// The viewer can list teams
	output, err = viewer.run("team", "list")
	require.NoError(t, err, "output: %s", output)

	var teams []teamResponse
	require.NoError(t, json.Unmarshal([]byte(output), &teams))
	assert.Len(t, teams, 1)

	// But cannot mutate; the doomed request is refused before it is sent,
	// so the message is the local one, not the server's
	output, err = viewer.run("team", "create",
		"--name", "City", "--sport", "soccer", "--season", "2026")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "permission")
	assert.Contains(t, strings.ToLower(output), "admin or coach")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Mutations without auth fail
	output, err := cli.run("team", "create",
		"--name", "Rovers", "--sport", "soccer", "--season", "2026")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "auth")

	// Register and look up a non-existent team
	_, err = cli.run("auth", "register",
		"--name", "Casey", "--email", "casey@example.com",
		"--password", "password123", "--role", "coach")
	require.NoError(t, err)

	output, err = cli.run("team", "get", "team_missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// A bad enum is rejected before the request is sent
	output, err = cli.run("team", "create",
		"--name", "Rovers", "--sport", "quidditch", "--season", "2026")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "sport")
}
