package model

import (
	"sync"
	"time"
)

// GameConfig holds the per-game settings a driver chooses when creating a game.
type GameConfig struct {
	ClockTime     time.Duration
	CheckmateMode CheckmateMode
}

// DefaultGameConfig is ten minutes a side with the heuristic checkmate rule.
func DefaultGameConfig() GameConfig {
	return GameConfig{ClockTime: 600 * time.Second, CheckmateMode: CheckmateHeuristic}
}

// Game is one networked game: the board plus who is seated, clocks and history.
// All methods are safe for concurrent use.
type Game struct {
	ID string

	// notifyMu orders state changes with their notifications, so watchers
	// see snapshots one at a time and oldest first. It is taken before mu.
	notifyMu   sync.Mutex
	mu         sync.Mutex
	board      *Board
	evaluator  Evaluator
	players    Players
	history    []Ply
	captured   CapturedPieces
	outcome    Outcome
	lastMove   *Move
	whiteClock *Clock
	blackClock *Clock
	onChange   func(GameState)
}

type Players struct {
	White Seat `json:"white"`
	Black Seat `json:"black"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameState is a point-in-time snapshot handed to clients.
type GameState struct {
	ID             string         `json:"id"`
	Board          *Board         `json:"boardState"`
	ToMove         Player         `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Outcome        Outcome        `json:"outcome"`
	Players        Players        `json:"players"`
	LastMove       *Move          `json:"lastMove"`
}

func NewGame(id string, cfg GameConfig) *Game {
	deciseconds := int(cfg.ClockTime.Milliseconds() / 100)
	return &Game{
		ID:        id,
		board:     NewBoard(),
		evaluator: Evaluator{Mode: cfg.CheckmateMode},
		players: Players{
			White: Seat{Color: White, TimeLeft: deciseconds},
			Black: Seat{Color: Black, TimeLeft: deciseconds},
		},
		history: make([]Ply, 0),
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		outcome:    Outcome{Status: StatusOngoing},
		whiteClock: NewClock(cfg.ClockTime),
		blackClock: NewClock(cfg.ClockTime),
	}
}

// OnChange registers a callback invoked with a fresh snapshot after every state change.
// Calls never overlap and arrive in the order the changes were made. The callback runs
// outside the state lock, so it may read the game but must not change it.
func (g *Game) OnChange(fn func(GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// Observe calls fn with the current state while no change can be made or announced,
// so a new watcher can be sent the state and then join the notifications without a gap.
func (g *Game) Observe(fn func(GameState)) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	fn(g.GetState())
}

// AddPlayer seats playerID at the first free side. Re-joining returns the existing seat.
func (g *Game) AddPlayer(playerID string) (Player, error) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	g.mu.Lock()
	color, err := g.addPlayer(playerID)
	state, notify := g.snapshot(), g.onChange
	g.mu.Unlock()

	if err == nil && notify != nil {
		notify(state)
	}
	return color, err
}

func (g *Game) addPlayer(playerID string) (Player, error) {
	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White.ID = playerID
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black.ID = playerID
		// Both seats are taken; White's time starts now.
		g.whiteClock.Start()
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (Player, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return White, true
	}
	if g.players.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

// CanSpectate reports whether a seat is still open.
func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// LegalMoves lists the destinations of the piece on from.
func (g *Game) LegalMoves(from Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return LegalDestinations(g.board, from)
}

// MakeMove validates and applies a move for playerID, then evaluates the outcome.
func (g *Game) MakeMove(playerID string, move Move) error {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	g.mu.Lock()
	if err := g.makeMove(playerID, move); err != nil {
		g.mu.Unlock()
		return err
	}
	state, notify := g.snapshot(), g.onChange
	g.mu.Unlock()

	if notify != nil {
		notify(state)
	}
	return nil
}

func (g *Game) makeMove(playerID string, move Move) error {
	if g.outcome.Over() {
		return ErrGameOver
	}
	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if color != g.board.Turn {
		return ErrNotYourTurn
	}
	if err := ValidateMove(g.board, move); err != nil {
		return err
	}

	g.clockFor(color).Stop()

	ply := Ply{
		Piece:    *g.board.PieceAt(move.From),
		From:     move.From,
		To:       move.To,
		Notation: notation(g.board, move),
	}
	if captured := g.board.Apply(move); captured != nil {
		ply.CapturedPiece = captured
		if color == White {
			g.captured.White = append(g.captured.White, *captured)
		} else {
			g.captured.Black = append(g.captured.Black, *captured)
		}
	}

	g.outcome = g.evaluator.Outcome(g.board)
	switch g.outcome.Status {
	case StatusCheckmate:
		ply.Notation += "#"
	case StatusOngoing:
		if IsKingAttacked(g.board, g.board.Turn) {
			ply.Notation += "+"
		}
		g.clockFor(g.board.Turn).Start()
	}

	g.history = append(g.history, ply)
	g.lastMove = &Move{From: move.From, To: move.To}

	g.players.White.TimeLeft = g.whiteClock.deciseconds()
	g.players.Black.TimeLeft = g.blackClock.deciseconds()
	return nil
}

func (g *Game) clockFor(color Player) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

// Outcome returns the current verdict.
func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

func (g *Game) snapshot() GameState {
	history := make([]Ply, len(g.history))
	copy(history, g.history)
	captured := CapturedPieces{
		White: append([]Piece{}, g.captured.White...),
		Black: append([]Piece{}, g.captured.Black...),
	}
	var last *Move
	if g.lastMove != nil {
		m := *g.lastMove
		last = &m
	}
	return GameState{
		ID:             g.ID,
		Board:          g.board.Clone(),
		ToMove:         g.board.Turn,
		MoveHistory:    history,
		CapturedPieces: captured,
		IsCheck:        IsKingAttacked(g.board, g.board.Turn),
		Outcome:        g.outcome,
		Players:        g.players,
		LastMove:       last,
	}
}
