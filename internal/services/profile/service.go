package profile

import (
	"context"
	"log/slog"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// Service mutates player profile state. All read-modify-write sequences go
// through the store; conflicts and not-found conditions surface unchanged.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new profile service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Get returns the player with the given id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// GetByUsername returns the player with the given username
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.Player, error) {
	return s.storage.GetPlayerByUsername(ctx, username)
}

// List returns players matching the filter
func (s *Service) List(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx, filter)
}

// UpdateUsername renames the player. A taken username surfaces as
// model.ErrUsernameTaken and leaves the record untouched.
func (s *Service) UpdateUsername(ctx context.Context, id model.PlayerID, username string) (*model.Player, error) {
	player, err := s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{Username: &username})
	if err != nil {
		return nil, err
	}

	s.logger.Info("username updated",
		slog.Int64("player_id", int64(id)),
		slog.String("username", username))
	return player, nil
}

// UpdateAvatar replaces the player's avatar URL
func (s *Service) UpdateAvatar(ctx context.Context, id model.PlayerID, avatarURL string) (*model.Player, error) {
	return s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{Avatar: &avatarURL})
}

// UpdateLevel increments the player's level by the fixed step. There is no
// cap; repeated calls accumulate.
func (s *Service) UpdateLevel(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	level := player.Level + model.LevelStep
	return s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{Level: &level})
}

// UpdateStatus sets the player's presence state. Validity of the value is
// the caller's responsibility.
func (s *Service) UpdateStatus(ctx context.Context, id model.PlayerID, status model.Status) (*model.Player, error) {
	return s.storage.UpdatePlayer(ctx, id, model.PlayerPatch{Status: &status})
}
