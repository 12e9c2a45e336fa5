package redis

import (
	"fmt"

	"github.com/pongarena/playerhub/internal/model"
)

// Key prefix for all player-hub data
const keyPrefix = "playerhub"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// relationKey returns the Redis key for a Relation
func relationKey(id model.RelationID) string {
	return fmt.Sprintf("%s:relation:%d", keyPrefix, id)
}

// relationsIndexKey returns the Redis key for the SET of all relation ids
func relationsIndexKey() string {
	return fmt.Sprintf("%s:idx:relations", keyPrefix)
}

// relationSeqKey returns the Redis key of the relation id sequence
func relationSeqKey() string {
	return fmt.Sprintf("%s:seq:relation", keyPrefix)
}
