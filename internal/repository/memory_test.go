package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		// Given: a stored game
		game := newTestGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own value
		game.Board[0][0] = entity.PlayerX

		// Then: the stored game is unaffected
		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, retrievedGame.Board[0][0])
		assert.Equal(t, "Ann", retrievedGame.PlayerByMark(entity.PlayerX).Name)
	})

	t.Run("Update overwrites the stored game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		game := newTestGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		game.Board[2][2] = entity.PlayerX
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("Missing game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "404")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "404")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newTestGame("123")))
		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
