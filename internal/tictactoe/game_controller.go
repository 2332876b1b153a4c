package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeContinue
	OutcomeWin
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomeContinue:
		return "continue"
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "ignored"
	}
}

// MoveResult - the state transition produced by a single call.
// Player is the winner on OutcomeWin and the next player on OutcomeContinue.
// Reason explains an OutcomeIgnored result.
type MoveResult struct {
	Outcome  Outcome
	Position entity.Position
	Mark     entity.Mark
	Player   *entity.Player
	Reason   error

	botToMove bool
}

func (that MoveResult) Ignored() bool {
	return that.Outcome == OutcomeIgnored
}

// BotToMove - the caller should follow up with ApplyBotMove.
func (that MoveResult) BotToMove() bool {
	return that.botToMove
}

type Engine struct {
	game *entity.Game
	rnd  Randomizer
}

type Option func(*Engine)

func WithRandomizer(rnd Randomizer) Option {
	return func(engine *Engine) {
		engine.rnd = rnd
	}
}

func NewEngine(game *entity.Game, opts ...Option) *Engine {
	engine := &Engine{
		game: game,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rnd == nil {
		engine.rnd = NewRandomizer()
	}

	return engine
}

// ApplyMove - places the active player's mark at (row, col).
// Illegal moves are ignored without a state change, only an out of range
// position is reported as an error.
func (that *Engine) ApplyMove(row, col int) (MoveResult, error) {
	pos := entity.Position{Row: row, Col: col}
	if err := pos.Validate(); err != nil {
		return MoveResult{Position: pos}, err
	}

	if that.game.IsFinished() {
		return that.ignore(pos, apperror.ErrGameFinished), nil
	}

	if that.game.IsWithBot() && that.isBotTurn() {
		return that.ignore(pos, apperror.ErrNotYourTurn), nil
	}

	return that.apply(pos), nil
}

// ApplyBotMove - lets the bot pick a uniformly random empty cell.
func (that *Engine) ApplyBotMove() MoveResult {
	switch {
	case !that.game.IsWithBot():
		return that.ignore(entity.Position{}, apperror.ErrBotDisabled)
	case that.game.IsFinished():
		return that.ignore(entity.Position{}, apperror.ErrGameFinished)
	case !that.isBotTurn():
		return that.ignore(entity.Position{}, apperror.ErrNotBotTurn)
	}

	pos, err := pickRandomCell(that.game, that.rnd)
	if err != nil {
		return that.ignore(entity.Position{}, err)
	}

	return that.apply(pos)
}

// apply - stamps the mark, then evaluates win, draw, continue in that order.
func (that *Engine) apply(pos entity.Position) MoveResult {
	if that.game.IsFinished() {
		return that.ignore(pos, apperror.ErrGameFinished)
	}

	if that.game.Cell(pos) != entity.EmptyCell {
		return that.ignore(pos, apperror.ErrCellOccupied)
	}

	mark := that.game.Turn
	that.game.Board[pos.Row][pos.Col] = mark

	result := MoveResult{Position: pos, Mark: mark}

	switch {
	case that.game.CheckWin(mark):
		that.game.Status = entity.StatusWon
		that.game.Winner = mark
		result.Outcome = OutcomeWin
		result.Player = that.game.PlayerByMark(mark)
	case that.game.IsBoardFull():
		that.game.Status = entity.StatusDraw
		result.Outcome = OutcomeDraw
	default:
		that.game.Turn = entity.ToggleMark(mark)
		result.Outcome = OutcomeContinue
		result.Player = that.game.ActivePlayer()
		result.botToMove = that.game.IsWithBot() && that.isBotTurn()
	}

	return result
}

func (that *Engine) ignore(pos entity.Position, reason error) MoveResult {
	return MoveResult{
		Outcome:  OutcomeIgnored,
		Position: pos,
		Reason:   reason,
	}
}

func (that *Engine) isBotTurn() bool {
	player := that.game.ActivePlayer()
	return player != nil && player.IsBot()
}

func (that *Engine) Cell(row, col int) (entity.Mark, error) {
	pos := entity.Position{Row: row, Col: col}
	if err := pos.Validate(); err != nil {
		return entity.EmptyCell, fmt.Errorf("failed to read cell: %w", err)
	}

	return that.game.Cell(pos), nil
}

func (that *Engine) Status() entity.Status {
	return that.game.Status
}

// ActivePlayerName - name of the player whose move is expected; on a
// finished game this is the player who made the last move.
func (that *Engine) ActivePlayerName() string {
	if player := that.game.ActivePlayer(); player != nil {
		return player.Name
	}

	return string(that.game.Turn)
}

func (that *Engine) Winner() *entity.Player {
	return that.game.WinnerPlayer()
}

// Game - a copy of the current state.
func (that *Engine) Game() *entity.Game {
	return that.game.Clone()
}

// StatusText - the status line shown under the board.
func StatusText(game *entity.Game) string {
	switch game.Status {
	case entity.StatusWon:
		if winner := game.WinnerPlayer(); winner != nil {
			return winner.Name + " wins!"
		}
		return string(game.Winner) + " wins!"
	case entity.StatusDraw:
		return "It's a draw!"
	default:
		if player := game.ActivePlayer(); player != nil {
			return player.Name + "'s turn"
		}
		return string(game.Turn) + "'s turn"
	}
}
