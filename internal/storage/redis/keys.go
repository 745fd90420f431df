package redis

import (
	"fmt"

	"github.com/mfreeman/rosterhub/internal/model"
)

// Key prefix for all roster data
const keyPrefix = "rosterhub"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// rosterKey returns the Redis key for a Roster
func rosterKey(id model.RosterID) string {
	return fmt.Sprintf("%s:roster:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// Index SETs holding the member keys for each entity kind

func usersIndexKey() string {
	return keyPrefix + ":idx:users"
}

func teamsIndexKey() string {
	return keyPrefix + ":idx:teams"
}

func playersIndexKey() string {
	return keyPrefix + ":idx:players"
}

func rostersIndexKey() string {
	return keyPrefix + ":idx:rosters"
}

func gamesIndexKey() string {
	return keyPrefix + ":idx:games"
}
