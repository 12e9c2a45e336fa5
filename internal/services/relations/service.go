package relations

import (
	"context"
	"log/slog"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// Service manages relations between players (friends, blocks)
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new relations service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create records a relation from one player to another. Both players must
// exist.
func (s *Service) Create(ctx context.Context, playerID, targetID model.PlayerID, kind model.RelationKind) (*model.Relation, error) {
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetPlayer(ctx, targetID); err != nil {
		return nil, err
	}

	relation, err := s.storage.CreateRelation(ctx, &model.Relation{
		PlayerID: playerID,
		TargetID: targetID,
		Kind:     kind,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("relation created",
		slog.Int64("player_id", int64(playerID)),
		slog.Int64("target_id", int64(targetID)),
		slog.String("kind", string(kind)))
	return relation, nil
}

// Get returns the relation with the given id
func (s *Service) Get(ctx context.Context, id model.RelationID) (*model.Relation, error) {
	return s.storage.GetRelation(ctx, id)
}

// List returns relations matching the filter
func (s *Service) List(ctx context.Context, filter model.RelationFilter) ([]*model.Relation, error) {
	return s.storage.ListRelations(ctx, filter)
}

// Delete removes the relation with the given id
func (s *Service) Delete(ctx context.Context, id model.RelationID) error {
	return s.storage.DeleteRelation(ctx, id)
}
