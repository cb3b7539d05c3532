package controller

import (
	"errors"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/benbeisheim/chess-engine/internal/service"
	"github.com/benbeisheim/chess-engine/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// MoveRequest is a move in algebraic squares, used by REST and websocket clients.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r MoveRequest) toMove() (model.Move, error) {
	return model.ParseMove(r.From, r.To)
}

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, storage.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidOrigin),
		errors.Is(err, model.ErrInvalidDestination),
		errors.Is(err, model.ErrInvalidSquare):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrArchiveMissing):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(gameState)
}

// LegalMoves lists the destinations of the piece on :square.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return sendError(c, err)
	}
	squares := make([]string, len(moves))
	for i, p := range moves {
		squares[i] = p.String()
	}
	return c.JSON(fiber.Map{
		"square":       c.Params("square"),
		"destinations": squares,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	move, err := req.toMove()
	if err != nil {
		return sendError(c, err)
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return sendError(c, err)
	}

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// MatchmakingStatus reports whether the caller has been paired yet.
func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	match, ok := gc.gameService.MatchFor(playerID)
	if !ok {
		return c.JSON(fiber.Map{
			"status": "queued",
		})
	}
	return c.JSON(fiber.Map{
		"status": "matched",
		"gameId": match.GameID,
		"color":  match.Color,
	})
}

func (gc *GameController) GetArchived(c *fiber.Ctx) error {
	rec, err := gc.gameService.Archived(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(rec)
}

// ListArchived returns every finished game.
func (gc *GameController) ListArchived(c *fiber.Ctx) error {
	recs, err := gc.gameService.ListArchived()
	if err != nil {
		return sendError(c, err)
	}
	if recs == nil {
		recs = []storage.Record{}
	}
	return c.JSON(fiber.Map{
		"games": recs,
	})
}
