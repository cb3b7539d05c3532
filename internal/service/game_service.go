package service

import (
	"fmt"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/benbeisheim/chess-engine/internal/storage"
	"github.com/benbeisheim/chess-engine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Player, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	log.Infow("game created", "game", gameID)

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) MatchFor(playerID string) (MatchFoundEvent, bool) {
	return gs.gameManager.MatchFor(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, square string) ([]model.Position, error) {
	from, err := model.ParsePosition(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		log.Debugw("move rejected", "game", gameID, "player", playerID, "move", move.String(), "error", err)
		return err
	}
	log.Debugw("move applied", "game", gameID, "player", playerID, "move", move.String())
	return nil
}

func (gs *GameService) Archived(gameID string) (storage.Record, error) {
	return gs.gameManager.Archived(gameID)
}

func (gs *GameService) ListArchived() ([]storage.Record, error) {
	return gs.gameManager.ListArchived()
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn ws.Conn) (ws.Conn, error) {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn ws.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
