package achievements

import (
	"context"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage"
)

// tiers is the fixed ordered tier list, most prestigious first
var tiers = []string{"gold", "silver", "bronze", "first"}

// Tiers maps a win count to the ordered list of earned achievement tiers.
//
// The ladder is intentionally reproduced as-is, including its gap: wins of
// 0 and 2 through 4 both yield an empty list. Do not change the thresholds
// without a product decision.
func Tiers(wins int) []string {
	var cut int
	switch {
	case wins >= 20:
		cut = -4
	case wins >= 10:
		cut = -3
	case wins >= 5:
		cut = -2
	case wins == 1:
		cut = -1
	default:
		cut = 4
	}
	start := cut
	if cut < 0 {
		start = len(tiers) + cut
	}
	return append([]string{}, tiers[start:]...)
}

// Service derives achievement tiers for stored players
type Service struct {
	storage storage.Storage
}

// New creates a new achievements service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// TiersForPlayer loads the player and returns its earned tiers
func (s *Service) TiersForPlayer(ctx context.Context, id model.PlayerID) ([]string, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return Tiers(player.Wins), nil
}
