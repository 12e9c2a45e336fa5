package achievements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/storage/memory"
)

func TestTiers(t *testing.T) {
	cases := []struct {
		wins     int
		expected []string
	}{
		{0, []string{}},
		{1, []string{"first"}},
		{2, []string{}},
		{3, []string{}},
		{4, []string{}},
		{5, []string{"bronze", "first"}},
		{9, []string{"bronze", "first"}},
		{10, []string{"silver", "bronze", "first"}},
		{19, []string{"silver", "bronze", "first"}},
		{20, []string{"gold", "silver", "bronze", "first"}},
		{100, []string{"gold", "silver", "bronze", "first"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Tiers(tc.wins), "wins=%d", tc.wins)
	}
}

func TestTiersForPlayer(t *testing.T) {
	storage := memory.New()
	ctx := context.Background()

	_, err := storage.CreatePlayer(ctx, &model.Player{
		ID:       1,
		Username: "alice",
		Status:   model.StatusOnline,
		Wins:     12,
	})
	require.NoError(t, err)

	service := New(storage)

	earned, err := service.TiersForPlayer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"silver", "bronze", "first"}, earned)
}

func TestTiersForPlayerNotFound(t *testing.T) {
	service := New(memory.New())

	_, err := service.TiersForPlayer(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}
