package service

import (
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/benbeisheim/chess-engine/internal/storage"
	"github.com/benbeisheim/chess-engine/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrArchiveMissing = errors.New("archive not configured")
)

// Archive stores finished games.
type Archive interface {
	Save(rec storage.Record) error
	Load(id string) (storage.Record, error)
	List() ([]storage.Record, error)
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  model.Player `json:"color"`
}

type ManagerConfig struct {
	Game                model.GameConfig
	MatchmakingInterval time.Duration
	Hub                 *ws.Hub
	Archive             Archive
}

// GameManager owns every live game, the matchmaking queue and the archive hook.
type GameManager struct {
	games    map[string]*model.Game
	queue    *model.Queue
	matches  map[string]MatchFoundEvent
	archived map[string]bool
	settings model.GameConfig
	hub      *ws.Hub
	archive  Archive
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewGameManager(cfg ManagerConfig) *GameManager {
	gm := &GameManager{
		games:    make(map[string]*model.Game),
		queue:    model.NewQueue(),
		matches:  make(map[string]MatchFoundEvent),
		archived: make(map[string]bool),
		settings: cfg.Game,
		hub:      cfg.Hub,
		archive:  cfg.Archive,
		stop:     make(chan struct{}),
	}

	if cfg.MatchmakingInterval > 0 {
		go gm.processMatchmaking(cfg.MatchmakingInterval)
	}

	return gm
}

// Close stops the matchmaking loop.
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() { close(gm.stop) })
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.MatchPlayers()
		}
	}
}

// MatchPlayers pairs queued players two at a time into fresh games.
func (gm *GameManager) MatchPlayers() int {
	paired := 0
	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return paired
		}

		gameID := uuid.New().String()
		game := gm.newGame(gameID)
		p1Color, err := game.AddPlayer(player1)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", player1, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", player2, err)
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = game
		gm.matches[player1] = MatchFoundEvent{GameID: gameID, Color: p1Color}
		gm.matches[player2] = MatchFoundEvent{GameID: gameID, Color: p2Color}
		gm.mu.Unlock()

		log.Infow("match found", "game", gameID, "white", player1, "black", player2)
		paired++
	}
}

// newGame builds a game wired to broadcast and archive its state changes.
func (gm *GameManager) newGame(gameID string) *model.Game {
	game := model.NewGame(gameID, gm.settings)
	game.OnChange(func(state model.GameState) {
		gm.broadcast(state)
		if state.Outcome.Over() {
			gm.archiveGame(state)
		}
	})
	return game
}

func (gm *GameManager) broadcast(state model.GameState) {
	if gm.hub == nil {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("marshal state of game %s: %v", state.ID, err)
		return
	}
	gm.hub.Broadcast(state.ID, msg)
}

func (gm *GameManager) archiveGame(state model.GameState) {
	gm.mu.Lock()
	if gm.archived[state.ID] {
		gm.mu.Unlock()
		return
	}
	gm.archived[state.ID] = true
	gm.mu.Unlock()

	log.Infow("game finished", "game", state.ID, "status", state.Outcome.Status, "winner", state.Outcome.Winner)
	if gm.archive == nil {
		return
	}

	moves := make([]string, len(state.MoveHistory))
	for i, ply := range state.MoveHistory {
		moves[i] = ply.Notation
	}
	rec := storage.Record{
		ID:         state.ID,
		White:      state.Players.White.ID,
		Black:      state.Players.Black.ID,
		Status:     state.Outcome.Status,
		Winner:     state.Outcome.Winner,
		Moves:      moves,
		FinishedAt: time.Now().UTC(),
	}
	if err := gm.archive.Save(rec); err != nil {
		log.Errorf("archive game %s: %v", state.ID, err)
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = gm.newGame(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Player, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	delete(gm.matches, playerID)
	gm.mu.Unlock()

	return gm.queue.AddPlayer(playerID)
}

// MatchFor returns the pending match of playerID, if one has been made.
func (gm *GameManager) MatchFor(playerID string) (MatchFoundEvent, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	ev, ok := gm.matches[playerID]
	return ev, ok
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from), nil
}

// ListArchived returns every finished game in the archive.
func (gm *GameManager) ListArchived() ([]storage.Record, error) {
	if gm.archive == nil {
		return nil, ErrArchiveMissing
	}
	return gm.archive.List()
}

func (gm *GameManager) Archived(gameID string) (storage.Record, error) {
	if gm.archive == nil {
		return storage.Record{}, ErrArchiveMissing
	}
	return gm.archive.Load(gameID)
}

// RegisterConnection subscribes conn to gameID and sends it the current state.
// The returned Conn serializes writes with the game's broadcasts; the caller must
// write to the socket only through it.
func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn ws.Conn) (ws.Conn, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsPlayerInGame(playerID) && !game.CanSpectate() {
		return nil, model.ErrNotInGame
	}

	var locked ws.Conn
	game.Observe(func(state model.GameState) {
		if gm.hub == nil {
			locked = ws.Lock(conn)
		} else if locked, err = gm.hub.For(gameID).Register(playerID, conn); err != nil {
			return
		}

		var msg ws.Message
		if msg, err = ws.NewMessage(ws.MessageTypeGameState, state); err == nil {
			err = locked.WriteJSON(msg)
		}
		if err != nil {
			// Still inside Observe, so no broadcast holds the connection.
			gm.UnregisterConnection(gameID, playerID, locked)
		}
	})
	if err != nil {
		return nil, err
	}
	return locked, nil
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn ws.Conn) {
	if gm.hub == nil {
		return
	}
	gm.hub.For(gameID).Unregister(playerID, conn)
}
