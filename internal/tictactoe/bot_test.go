package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func TestEngine_ApplyBotMove(t *testing.T) {
	t.Run("Bot plays one of the empty cells", func(t *testing.T) {
		for index := 0; index < 8; index++ {
			// Given: a bot game after X's opening move
			rnd := &fixedRandomizer{index: index}
			engine := NewEngine(newBotGame(), WithRandomizer(rnd))
			result := mustMove(t, engine, 1, 1)
			require.True(t, result.BotToMove())

			before := engine.Game()
			emptyCells := before.EmptyCells()

			// When: the bot moves
			result = engine.ApplyBotMove()

			// Then: the chosen cell is the index-th empty cell out of 8
			require.Equal(t, []int{8}, rnd.calls)
			require.Equal(t, OutcomeContinue, result.Outcome)
			assert.Equal(t, emptyCells[index], result.Position)
			assert.Equal(t, entity.PlayerO, result.Mark)
			assert.Equal(t, "Ann", result.Player.Name)
			assert.False(t, result.BotToMove())

			// Then: only that cell changed
			after := engine.Game()
			for row := range after.Board {
				for col := range after.Board[row] {
					pos := entity.Position{Row: row, Col: col}
					if pos == result.Position {
						assert.Equal(t, entity.EmptyCell, before.Cell(pos))
						assert.Equal(t, entity.PlayerO, after.Cell(pos))
						continue
					}
					assert.Equal(t, before.Cell(pos), after.Cell(pos))
				}
			}
		}
	})

	t.Run("Bot can win the game", func(t *testing.T) {
		// Given: O needs (2,2) to complete the diagonal and it is the last empty cell but one
		game := newBotGame()
		game.Board = entity.Board{
			{entity.PlayerO, entity.PlayerX, entity.PlayerX},
			{entity.PlayerX, entity.PlayerO, entity.EmptyCell},
			{entity.PlayerX, entity.PlayerO, entity.EmptyCell},
		}
		game.Turn = entity.PlayerO
		engine := NewEngine(game, WithRandomizer(&fixedRandomizer{index: 1}))

		// When: the bot picks (2,2)
		result := engine.ApplyBotMove()

		// Then: the bot wins
		assert.Equal(t, OutcomeWin, result.Outcome)
		assert.Equal(t, entity.DefaultBotName, result.Player.Name)
		assert.Equal(t, entity.StatusWon, engine.Status())
		assert.Equal(t, "Computer wins!", StatusText(engine.Game()))
	})

	t.Run("Full board is a safe no-op", func(t *testing.T) {
		// Given: an in-progress game whose board is already full
		game := newBotGame()
		game.Board = entity.Board{
			{entity.PlayerX, entity.PlayerO, entity.PlayerX},
			{entity.PlayerX, entity.PlayerO, entity.PlayerO},
			{entity.PlayerO, entity.PlayerX, entity.PlayerX},
		}
		game.Turn = entity.PlayerO
		rnd := &fixedRandomizer{}
		engine := NewEngine(game, WithRandomizer(rnd))
		before := engine.Game()

		// When: the bot is asked to move
		result := engine.ApplyBotMove()

		// Then: nothing happens
		assert.True(t, result.Ignored())
		require.ErrorIs(t, result.Reason, apperror.ErrNoAvailableMoves)
		assert.Empty(t, rnd.calls)
		assert.Equal(t, before, engine.Game())
	})

	t.Run("Ignored when it is not the bot's turn", func(t *testing.T) {
		engine := NewEngine(newBotGame(), WithRandomizer(&fixedRandomizer{}))

		result := engine.ApplyBotMove()

		require.ErrorIs(t, result.Reason, apperror.ErrNotBotTurn)
		assert.Equal(t, entity.Board{}, engine.Game().Board)
	})

	t.Run("Ignored without bot mode", func(t *testing.T) {
		engine := NewEngine(newLocalGame("", ""))
		mustMove(t, engine, 0, 0)

		result := engine.ApplyBotMove()

		require.ErrorIs(t, result.Reason, apperror.ErrBotDisabled)
		assert.Equal(t, entity.PlayerO, engine.Game().Turn)
	})

	t.Run("Ignored after the game is finished", func(t *testing.T) {
		game := newBotGame()
		game.Status = entity.StatusWon
		game.Winner = entity.PlayerX
		game.Turn = entity.PlayerO
		engine := NewEngine(game, WithRandomizer(&fixedRandomizer{}))

		result := engine.ApplyBotMove()

		require.ErrorIs(t, result.Reason, apperror.ErrGameFinished)
		assert.Equal(t, entity.Board{}, engine.Game().Board)
	})
}

func TestEngine_BotGameKeepsInvariants(t *testing.T) {
	for i := 0; i < 100; i++ {
		// Given: a bot game where the human also plays randomly
		engine := NewEngine(newBotGame())
		human := NewRandomizer()

		for engine.Status() == entity.StatusInProgress {
			cells := engine.Game().EmptyCells()
			pos := cells[human.Intn(len(cells))]

			// When: the human moves and the bot replies when asked
			result := mustMove(t, engine, pos.Row, pos.Col)
			require.False(t, result.Ignored())
			assertBalanced(t, engine.Game())

			if result.BotToMove() {
				result = engine.ApplyBotMove()
				require.False(t, result.Ignored())
				assertBalanced(t, engine.Game())
			}
		}

		// Then: the game always ends
		assert.True(t, engine.Game().IsFinished())
	}
}

func TestPickRandomCell(t *testing.T) {
	// Given: a board with three empty cells
	game := &entity.Game{Board: entity.Board{
		{entity.PlayerX, entity.EmptyCell, entity.PlayerO},
		{entity.EmptyCell, entity.PlayerX, entity.PlayerO},
		{entity.PlayerX, entity.PlayerO, entity.EmptyCell},
	}}

	// When: the default randomizer picks many times
	seen := map[entity.Position]int{}
	rnd := NewRandomizer()
	for i := 0; i < 300; i++ {
		pos, err := pickRandomCell(game, rnd)
		require.NoError(t, err)
		seen[pos]++
	}

	// Then: every pick is empty and every empty cell gets chosen
	assert.Len(t, seen, 3)
	for pos := range seen {
		assert.Equal(t, entity.EmptyCell, game.Cell(pos))
	}
}
