package tictactoe

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Randomizer - source of the bot's choice. Intn must return a uniform
// value in [0, n).
type Randomizer interface {
	Intn(n int) int
}

func NewRandomizer() Randomizer {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
}

// pickRandomCell - rescans the board on every call, the board is tiny.
func pickRandomCell(game *entity.Game, rnd Randomizer) (entity.Position, error) {
	availableCells := game.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMoves
	}

	return availableCells[rnd.Intn(len(availableCells))], nil
}
