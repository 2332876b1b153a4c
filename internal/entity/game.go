package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

const (
	LocalType   = "local"
	WithBotType = "bot"
)

const BoardSize = 3

// WinCombos - the 8 triples: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) Validate() error {
	if that.Row < 0 || that.Row >= BoardSize || that.Col < 0 || that.Col >= BoardSize {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, that.Row, that.Col)
	}

	return nil
}

type Board [BoardSize][BoardSize]Mark

type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Winner  Mark      `json:"winner"`
	Status  Status    `json:"status"`
	Turn    Mark      `json:"player_turn"`
	Players []*Player `json:"players"`
	Type    string    `json:"type"`
}

// NewGame - creates a fresh game state: empty board, X to move.
func NewGame(id, gameType string, playerX, playerO *Player) *Game {
	return &Game{
		ID:      id,
		Board:   Board{},
		Turn:    PlayerX,
		Status:  StatusInProgress,
		Players: []*Player{playerX, playerO},
		Type:    gameType,
	}
}

func (that *Game) Cell(pos Position) Mark {
	return that.Board[pos.Row][pos.Col]
}

func (that *Game) CheckWin(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that.Cell(combo[0]) == mark && that.Cell(combo[1]) == mark && that.Cell(combo[2]) == mark {
			return true
		}
	}

	return false
}

func (that *Game) IsBoardFull() bool {
	for _, row := range that.Board {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// EmptyCells - rescans the board, row-major.
func (that *Game) EmptyCells() []Position {
	cells := make([]Position, 0, BoardSize*BoardSize)
	for row := range that.Board {
		for col, cell := range that.Board[row] {
			if cell == EmptyCell {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Game) CountMarks(mark Mark) int {
	count := 0
	for _, row := range that.Board {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

func (that *Game) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player != nil && player.Mark == mark {
			return player
		}
	}

	return nil
}

func (that *Game) ActivePlayer() *Player {
	return that.PlayerByMark(that.Turn)
}

func (that *Game) WinnerPlayer() *Player {
	if that.Status != StatusWon {
		return nil
	}

	return that.PlayerByMark(that.Winner)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// Clone - deep copy, so callers can't mutate the engine's state.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Players = make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		if player == nil {
			continue
		}
		p := *player
		clone.Players = append(clone.Players, &p)
	}

	return &clone
}

func ToggleMark(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
