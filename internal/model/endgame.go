package model

// CheckmateMode selects how EvaluateCheckmate decides a game is lost.
type CheckmateMode int

const (
	// CheckmateHeuristic declares mate when every square the defending king could occupy,
	// its own included, is reachable by the attacker. Blocking or capturing with other
	// defending pieces is not considered.
	CheckmateHeuristic CheckmateMode = iota
	// CheckmateStrict declares mate when the defending king is attacked and no move of any
	// defending piece leaves it unattacked.
	CheckmateStrict
)

func (m CheckmateMode) String() string {
	if m == CheckmateStrict {
		return "strict"
	}
	return "heuristic"
}

// GameStatus is the verdict after a move.
type GameStatus string

const (
	StatusOngoing   GameStatus = "ongoing"
	StatusCheckmate GameStatus = "checkmate"
	StatusDraw      GameStatus = "draw"
)

// Outcome combines the checkmate and draw verdicts.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner Player     `json:"winner,omitempty"`
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o.Status != StatusOngoing
}

// Evaluator derives end-of-game verdicts from a board.
type Evaluator struct {
	Mode CheckmateMode
}

// Outcome evaluates the draw rule first and checkmate second.
func (e Evaluator) Outcome(b *Board) Outcome {
	if EvaluateDraw(b) {
		return Outcome{Status: StatusDraw}
	}
	if winner, ok := e.Checkmate(b); ok {
		return Outcome{Status: StatusCheckmate, Winner: winner}
	}
	return Outcome{Status: StatusOngoing}
}

// Checkmate reports the winner if the side to move is mated under the evaluator's mode.
func (e Evaluator) Checkmate(b *Board) (Player, bool) {
	if e.Mode == CheckmateStrict {
		return strictCheckmate(b)
	}
	return EvaluateCheckmate(b)
}

// EvaluateCheckmate applies the king-mobility heuristic to the side to move and returns
// the attacking side as winner when it holds.
func EvaluateCheckmate(b *Board) (Player, bool) {
	defender := b.Turn
	attacker := defender.Opponent()

	escape := escapeSet(b, defender)
	if len(escape) == 0 {
		return "", false
	}
	reach := reachable(b, attacker)

	matched := 0
	for _, p := range escape {
		if reach[p] {
			matched++
		}
	}
	if matched == 0 {
		return "", false
	}
	if matched == len(escape) {
		return attacker, true
	}
	return "", false
}

// escapeSet is the king's destinations plus the square it stands on.
func escapeSet(b *Board, owner Player) []Position {
	kingSq, ok := b.FindKing(owner)
	if !ok {
		return nil
	}
	squares := destinationsFor(b, kingSq, Piece{Type: King, Owner: owner})
	return append(squares, kingSq)
}

// IsKingAttacked reports whether any piece of the opponent can move onto owner's king.
func IsKingAttacked(b *Board, owner Player) bool {
	kingSq, ok := b.FindKing(owner)
	if !ok {
		return false
	}
	return reachable(b, owner.Opponent())[kingSq]
}

func strictCheckmate(b *Board) (Player, bool) {
	defender := b.Turn
	if !IsKingAttacked(b, defender) {
		return "", false
	}
	for _, m := range AllMoves(b) {
		next := b.Clone()
		next.Apply(m)
		if !IsKingAttacked(next, defender) {
			return "", false
		}
	}
	return defender.Opponent(), true
}

// EvaluateDraw reports a draw by insufficient material: bare kings, a lone minor piece
// against a bare king, or same-colored bishops on both sides.
func EvaluateDraw(b *Board) bool {
	white := b.PiecesOf(White)
	black := b.PiecesOf(Black)

	if len(white) == 1 && len(black) == 1 {
		return true
	}
	return minorPieceDraw(black, white) || minorPieceDraw(white, black)
}

// minorPieceDraw checks side a holding king plus one minor piece against side b.
func minorPieceDraw(a, b []Occupant) bool {
	if len(a) != 2 || len(b) > 2 {
		return false
	}
	for _, o := range a {
		if o.Piece.Type != Bishop && o.Piece.Type != Knight {
			continue
		}
		if len(b) == 1 {
			return true
		}
		if o.Piece.Type == Knight {
			return false
		}
		others := nonKings(b)
		if len(others) != 1 || others[0].Piece.Type != Bishop {
			return false
		}
		return o.Position.IsDark() == others[0].Position.IsDark()
	}
	return false
}

func nonKings(side []Occupant) []Occupant {
	var out []Occupant
	for _, o := range side {
		if o.Piece.Type != King {
			out = append(out, o)
		}
	}
	return out
}
