package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/store"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	dir    store.Directory
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// WithDirectory attaches a team directory used to resolve team references
// into display labels. Unresolvable references fall back to the raw id.
func (o *Output) WithDirectory(dir store.Directory) *Output {
	o.dir = dir
	return o
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Identity:
		o.printIdentity(v)
	case []model.Identity:
		o.printIdentities(v)
	case model.Team:
		o.printTeam(v)
	case []model.Team:
		o.printTeams(v)
	case model.Player:
		o.printPlayer(v)
	case []model.Player:
		o.printPlayers(v)
	case model.Roster:
		o.printRoster(v)
	case []model.Roster:
		o.printRosters(v)
	case model.Game:
		o.printGame(v)
	case []model.Game:
		o.printGames(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// teamLabel resolves a team reference for display
func (o *Output) teamLabel(id model.TeamID) string {
	if label := o.dir.TeamLabel(id); label != "" {
		return label
	}
	return string(id)
}

func (o *Output) printIdentity(id model.Identity) {
	fmt.Printf("User: %s <%s>\n", id.Name, id.Email)
	fmt.Printf("ID: %s\n", id.ID)
	fmt.Printf("Role: %s\n", id.Role)
}

func (o *Output) printIdentities(ids []model.Identity) {
	if len(ids) == 0 {
		fmt.Println("No users found")
		return
	}
	for _, id := range ids {
		fmt.Printf("%s  %s <%s>  [%s]\n", id.ID, id.Name, id.Email, id.Role)
	}
}

func (o *Output) printTeam(t model.Team) {
	fmt.Printf("Team: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Sport: %s\n", t.Sport)
	fmt.Printf("Season: %s\n", t.Season)
	if t.Division != "" {
		fmt.Printf("Division: %s\n", t.Division)
	}
	if t.Description != "" {
		fmt.Printf("Description: %s\n", t.Description)
	}
	r := t.Record
	fmt.Printf("Record: %dW-%dL-%dD (%d for, %d against)\n",
		r.Wins, r.Losses, r.Draws, r.GoalsFor, r.GoalsAgainst)
	fmt.Printf("Players: %d\n", len(t.PlayerIDs))
}

func (o *Output) printTeams(ts []model.Team) {
	if len(ts) == 0 {
		fmt.Println("No teams found")
		return
	}
	for _, t := range ts {
		r := t.Record
		fmt.Printf("%s  %s [%s, %s]  %dW-%dL-%dD\n",
			t.ID, t.Name, t.Sport, t.Season, r.Wins, r.Losses, r.Draws)
	}
}

func (o *Output) printPlayer(p model.Player) {
	fmt.Printf("Player: %s (%s)\n", p.FullName(), p.ID)
	fmt.Printf("Team: %s\n", o.teamLabel(p.TeamID))
	fmt.Printf("Position: %s\n", p.Position)
	fmt.Printf("Jersey: #%d\n", p.JerseyNumber)
	fmt.Printf("Status: %s\n", p.Status)
	fmt.Printf("Born: %s\n", p.DateOfBirth)
	if p.Email != "" {
		fmt.Printf("Email: %s\n", p.Email)
	}
	if p.Phone != "" {
		fmt.Printf("Phone: %s\n", p.Phone)
	}
	s := p.Stats
	fmt.Printf("Stats: %d games, %d goals, %d assists",
		s.GamesPlayed, s.Goals, s.Assists)
	if s.YellowCards > 0 || s.RedCards > 0 {
		fmt.Printf(", %dY/%dR", s.YellowCards, s.RedCards)
	}
	fmt.Println()
}

func (o *Output) printPlayers(ps []model.Player) {
	if len(ps) == 0 {
		fmt.Println("No players found")
		return
	}
	for _, p := range ps {
		fmt.Printf("%s  #%-2d %s  %s  %s  [%s]\n",
			p.ID, p.JerseyNumber, p.FullName(), p.Position,
			o.teamLabel(p.TeamID), p.Status)
	}
}

func (o *Output) printRoster(r model.Roster) {
	fmt.Printf("Roster: %s (%s)\n", r.Name, r.ID)
	fmt.Printf("Team: %s\n", o.teamLabel(r.TeamID))
	fmt.Printf("Type: %s\n", r.Type)
	fmt.Printf("Season: %s\n", r.Season)
	if r.Notes != "" {
		fmt.Printf("Notes: %s\n", r.Notes)
	}
	fmt.Printf("Players (%d):\n", len(r.PlayerIDs))
	for _, pid := range r.PlayerIDs {
		fmt.Printf("  - %s\n", pid)
	}
}

func (o *Output) printRosters(rs []model.Roster) {
	if len(rs) == 0 {
		fmt.Println("No rosters found")
		return
	}
	for _, r := range rs {
		fmt.Printf("%s  %s [%s, %s]  %s  %d players\n",
			r.ID, r.Name, r.Type, r.Season, o.teamLabel(r.TeamID), len(r.PlayerIDs))
	}
}

func (o *Output) printGame(g model.Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Team: %s\n", o.teamLabel(g.TeamID))
	fmt.Printf("Opponent: %s (%s)\n", g.Opponent, homeAway(g.HomeGame))
	fmt.Printf("Date: %s", g.Date)
	if g.Time != "" {
		fmt.Printf(" %s", g.Time)
	}
	fmt.Println()
	if g.Location != "" {
		fmt.Printf("Location: %s\n", g.Location)
	}
	fmt.Printf("Season: %s\n", g.Season)
	fmt.Printf("Status: %s\n", g.Status)
	if g.Score != nil {
		fmt.Printf("Score: %d-%d", g.Score.Team, g.Score.Opponent)
		if g.Result != nil {
			fmt.Printf(" (%s)", *g.Result)
		}
		fmt.Println()
	}
	if len(g.Participants) > 0 {
		ids := make([]string, len(g.Participants))
		for i, pid := range g.Participants {
			ids[i] = string(pid)
		}
		fmt.Printf("Participants: %s\n", strings.Join(ids, ", "))
	}
}

func (o *Output) printGames(gs []model.Game) {
	if len(gs) == 0 {
		fmt.Println("No games found")
		return
	}
	for _, g := range gs {
		line := fmt.Sprintf("%s  %s vs %s (%s)  [%s]",
			g.ID, g.Date, g.Opponent, homeAway(g.HomeGame), g.Status)
		if g.Score != nil {
			line += fmt.Sprintf("  %d-%d", g.Score.Team, g.Score.Opponent)
			if g.Result != nil {
				line += fmt.Sprintf(" %s", *g.Result)
			}
		}
		fmt.Println(line)
	}
}

func homeAway(home bool) string {
	if home {
		return "home"
	}
	return "away"
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
