package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

//go:generate mockery --name gameRepo --exported=false --with-expecter --output ../../mocks/usecase --outpkg usecase
type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// Setup - what the setup form collects before a session starts.
// With WithBot set, PlayerOName is the bot's name.
type Setup struct {
	PlayerXName string
	PlayerOName string
	WithBot     bool
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	engineOpts []tictactoe.Option
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, engineOpts ...tictactoe.Option) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		gameRepo:   gameRepo,
		engineOpts: engineOpts,
	}
}

// NewGame - starts a fresh session: empty board, X to move.
func (that *GameManager) NewGame(ctx context.Context, setup Setup) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	playerX := entity.NewPlayer(setup.PlayerXName, entity.DefaultPlayerXName, entity.PlayerX)

	gameType := entity.LocalType
	playerO := entity.NewPlayer(setup.PlayerOName, entity.DefaultPlayerOName, entity.PlayerO)
	if setup.WithBot {
		gameType = entity.WithBotType
		playerO = entity.NewBotPlayer(setup.PlayerOName)
	}

	game := entity.NewGame(gameID, gameType, playerX, playerO)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "type", game.Type, "playerX", playerX.Name, "playerO", playerO.Name)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies a human move. The bot is never chained here, the
// caller follows up with MakeBotTurn when the result asks for it.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, tictactoe.MoveResult, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, tictactoe.MoveResult{}, err
	}

	result, err := tictactoe.NewEngine(game, that.engineOpts...).ApplyMove(row, col)
	if err != nil {
		return game, result, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.commit(ctx, game, result); err != nil {
		return nil, result, err
	}

	return game, result, nil
}

func (that *GameManager) MakeBotTurn(ctx context.Context, id string) (*entity.Game, tictactoe.MoveResult, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, tictactoe.MoveResult{}, err
	}

	result := tictactoe.NewEngine(game, that.engineOpts...).ApplyBotMove()
	if err = that.commit(ctx, game, result); err != nil {
		return nil, result, err
	}

	return game, result, nil
}

// Rematch - ends the session and starts a new one with the same players.
func (that *GameManager) Rematch(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	setup := Setup{WithBot: game.IsWithBot()}
	if player := game.PlayerByMark(entity.PlayerX); player != nil {
		setup.PlayerXName = player.Name
	}
	if player := game.PlayerByMark(entity.PlayerO); player != nil {
		setup.PlayerOName = player.Name
	}

	that.EndGame(ctx, id)

	return that.NewGame(ctx, setup)
}

// EndGame - discards the session.
func (that *GameManager) EndGame(ctx context.Context, id string) {
	log := that.logger.With("method", "EndGame", "gameID", id)

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}

func (that *GameManager) commit(ctx context.Context, game *entity.Game, result tictactoe.MoveResult) error {
	log := that.logger.With("gameID", game.ID)

	if result.Ignored() {
		log.Debug("move ignored", "row", result.Position.Row, "col", result.Position.Col, "reason", result.Reason)
		return nil
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("move applied",
		"mark", result.Mark,
		"row", result.Position.Row,
		"col", result.Position.Col,
		"outcome", result.Outcome.String(),
	)

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status, "winner", game.Winner)
	}

	return nil
}
