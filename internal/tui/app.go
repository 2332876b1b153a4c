// Package tui is the terminal front end: a setup form, the 3x3 board as a
// grid of buttons, a status line and an exit button. All game rules live
// behind the game manager; this package only renders what it returns.
package tui

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	pageSetup  = "setup"
	pageBoard  = "board"
	pageResult = "result"

	labelPlayerX = "Player X name"
	labelPlayerO = "Player O name"
	labelBot     = "Play against computer"

	buttonPlayAgain = "Play again"
	buttonExit      = "Exit"
)

type gameManager interface {
	NewGame(ctx context.Context, setup usecase.Setup) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, tictactoe.MoveResult, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, tictactoe.MoveResult, error)
	Rematch(ctx context.Context, id string) (*entity.Game, error)
	EndGame(ctx context.Context, id string)
}

// Defaults - values pre-filled into the setup form.
type Defaults struct {
	PlayerXName string
	PlayerOName string
	BotName     string
	BotMode     bool
}

type UI struct {
	logger   *slog.Logger
	manager  gameManager
	defaults Defaults

	app    *tview.Application
	pages  *tview.Pages
	form   *tview.Form
	cells  [entity.BoardSize][entity.BoardSize]*tview.Button
	status *tview.TextView

	// queue schedules work after the current event has been drawn.
	queue func(func())

	ctx    context.Context
	game   *entity.Game
	busy   bool
	selRow int
	selCol int
}

func New(logger *slog.Logger, manager gameManager, defaults Defaults) *UI {
	that := &UI{
		logger:   logger.With("component", "tui"),
		manager:  manager,
		defaults: defaults,
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		ctx:      context.Background(),
		selRow:   1,
		selCol:   1,
	}

	that.queue = func(f func()) {
		// QueueUpdateDraw blocks until the event loop picks it up
		go that.app.QueueUpdateDraw(f)
	}

	that.pages.AddPage(pageSetup, that.newSetupForm(), true, true)
	that.pages.AddPage(pageBoard, that.newBoard(), true, false)

	that.app.SetRoot(that.pages, true).EnableMouse(true)
	that.app.SetInputCapture(that.captureInput)

	return that
}

// Run - blocks until the user exits or ctx is canceled.
func (that *UI) Run(ctx context.Context) error {
	that.ctx = ctx

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	return that.app.Run()
}

func (that *UI) newSetupForm() *tview.Form {
	that.form = tview.NewForm().
		AddInputField(labelPlayerX, that.defaults.PlayerXName, 24, nil, nil).
		AddInputField(labelPlayerO, that.defaults.PlayerOName, 24, nil, nil).
		AddCheckbox(labelBot, that.defaults.BotMode, nil).
		AddButton("Start", func() { that.startGame(that.setupFromForm()) }).
		AddButton(buttonExit, that.exit)

	that.form.SetBorder(true).SetTitle(" Tic-Tac-Toe Setup ")

	return that.form
}

// setupFromForm - in bot mode the O name field is ignored and the bot gets its configured name.
func (that *UI) setupFromForm() usecase.Setup {
	setup := usecase.Setup{
		PlayerXName: that.form.GetFormItemByLabel(labelPlayerX).(*tview.InputField).GetText(),
		PlayerOName: that.form.GetFormItemByLabel(labelPlayerO).(*tview.InputField).GetText(),
		WithBot:     that.form.GetFormItemByLabel(labelBot).(*tview.Checkbox).IsChecked(),
	}

	if setup.WithBot {
		setup.PlayerOName = that.defaults.BotName
	}

	return setup
}

func (that *UI) newBoard() tview.Primitive {
	grid := tview.NewGrid().
		SetRows(0, 0, 0).
		SetColumns(0, 0, 0).
		SetBorders(true)

	for row := range that.cells {
		for col := range that.cells[row] {
			r, c := row, col
			button := tview.NewButton(" ").SetSelectedFunc(func() { that.onCell(r, c) })
			that.cells[row][col] = button
			grid.AddItem(button, row, col, 1, 1, 0, 0, row == 1 && col == 1)
		}
	}

	that.status = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	exitButton := tview.NewButton(buttonExit).SetSelectedFunc(that.exit)

	bottom := tview.NewFlex().
		AddItem(that.status, 0, 1, false).
		AddItem(exitButton, len(buttonExit)+4, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(grid, 0, 1, true).
		AddItem(bottom, 1, 0, false)
}

func (that *UI) startGame(setup usecase.Setup) {
	game, err := that.manager.NewGame(that.ctx, setup)
	if err != nil {
		that.logger.Error("failed to start game", "error", err)
		that.showResult("Could not start the game: " + err.Error())
		return
	}

	that.game = game
	that.busy = false
	that.render()
	that.pages.SwitchToPage(pageBoard)
	that.focusCell(1, 1)
}

// onCell - a click on a board cell. While the bot is thinking input is dropped.
func (that *UI) onCell(row, col int) {
	if that.busy || that.game == nil {
		return
	}

	game, result, err := that.manager.MakeTurn(that.ctx, that.game.ID, row, col)
	if err != nil {
		that.logger.Error("failed to make turn", "row", row, "col", col, "error", err)
		return
	}

	that.game = game
	that.render()

	if result.Ignored() || that.finished(result) {
		return
	}

	if result.BotToMove() {
		that.busy = true
		that.queue(that.botTurn)
	}
}

func (that *UI) botTurn() {
	defer func() { that.busy = false }()

	game, result, err := that.manager.MakeBotTurn(that.ctx, that.game.ID)
	if err != nil {
		that.logger.Error("bot failed to make turn", "error", err)
		return
	}

	that.game = game
	that.render()
	that.finished(result)
}

func (that *UI) finished(result tictactoe.MoveResult) bool {
	if result.Outcome != tictactoe.OutcomeWin && result.Outcome != tictactoe.OutcomeDraw {
		return false
	}

	that.showResult(tictactoe.StatusText(that.game))

	return true
}

func (that *UI) showResult(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{buttonPlayAgain, buttonExit}).
		SetDoneFunc(func(_ int, label string) {
			that.pages.RemovePage(pageResult)

			if label == buttonPlayAgain {
				that.playAgain()
				return
			}

			that.exit()
		})

	that.pages.AddPage(pageResult, modal, false, true)
}

func (that *UI) playAgain() {
	if that.game == nil {
		that.pages.SwitchToPage(pageSetup)
		return
	}

	game, err := that.manager.Rematch(that.ctx, that.game.ID)
	if err != nil {
		that.logger.Error("failed to start a new game", "error", err)
		that.game = nil
		that.pages.SwitchToPage(pageSetup)
		return
	}

	that.game = game
	that.busy = false
	that.render()
	that.focusCell(1, 1)
}

func (that *UI) exit() {
	if that.game != nil {
		that.manager.EndGame(that.ctx, that.game.ID)
		that.game = nil
	}

	that.app.Stop()
}

func (that *UI) render() {
	for row := range that.cells {
		for col := range that.cells[row] {
			that.cells[row][col].SetLabel(cellLabel(that.game.Board[row][col]))
		}
	}

	that.status.SetText(tictactoe.StatusText(that.game))
}

func (that *UI) focusCell(row, col int) {
	that.selRow, that.selCol = row, col
	that.app.SetFocus(that.cells[row][col])
}

// captureInput - arrow keys move between cells, q and Esc leave the board.
func (that *UI) captureInput(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := that.pages.GetFrontPage(); name != pageBoard {
		return event
	}

	switch event.Key() {
	case tcell.KeyUp:
		that.moveSelection(-1, 0)
	case tcell.KeyDown:
		that.moveSelection(1, 0)
	case tcell.KeyLeft:
		that.moveSelection(0, -1)
	case tcell.KeyRight:
		that.moveSelection(0, 1)
	case tcell.KeyEscape:
		that.exit()
	case tcell.KeyRune:
		if event.Rune() != 'q' {
			return event
		}
		that.exit()
	default:
		return event
	}

	return nil
}

func (that *UI) moveSelection(dRow, dCol int) {
	row, col := that.selRow+dRow, that.selCol+dCol
	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return
	}

	that.focusCell(row, col)
}

func cellLabel(mark entity.Mark) string {
	if mark == entity.EmptyCell {
		return " "
	}

	return string(mark)
}
