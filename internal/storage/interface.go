package storage

import (
	"context"

	"github.com/pongarena/playerhub/internal/model"
)

// Storage defines the interface for data persistence.
//
// Get operations fail with model.ErrPlayerNotFound /
// model.ErrRelationNotFound when the record is absent. CreatePlayer and
// UpdatePlayer fail with model.ErrUsernameTaken when the username
// uniqueness constraint is violated; CreatePlayer fails with
// model.ErrPlayerExists when the id is already present. Any other storage
// failure propagates as-is and is never retried here. Mutations return
// the full post-mutation record.
type Storage interface {
	// Player operations
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error)
	CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error)

	// UpsertPlayerStatus atomically creates the player if absent or sets
	// its status if present, so concurrent first-logins for the same id
	// cannot race. The create argument supplies the record used when the
	// id is new.
	UpsertPlayerStatus(ctx context.Context, create *model.Player, status model.Status) (*model.Player, error)

	// Relation operations
	CreateRelation(ctx context.Context, relation *model.Relation) (*model.Relation, error)
	GetRelation(ctx context.Context, id model.RelationID) (*model.Relation, error)
	ListRelations(ctx context.Context, filter model.RelationFilter) ([]*model.Relation, error)
	DeleteRelation(ctx context.Context, id model.RelationID) error
}
