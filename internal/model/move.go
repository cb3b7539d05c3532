package model

import "fmt"

// Move is a proposed origin to destination relocation. It carries no board reference.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.From, m.To)
}

// ParseMove reads an origin and a destination square, e.g. ParseMove("e2", "e4").
func ParseMove(from, to string) (Move, error) {
	f, err := ParsePosition(from)
	if err != nil {
		return Move{}, err
	}
	t, err := ParsePosition(to)
	if err != nil {
		return Move{}, err
	}
	return Move{From: f, To: t}, nil
}

// Ply is one applied move as recorded in a game's history.
type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

// notation renders a short algebraic form of m on b before it is applied, e.g. "Nf3", "exd5".
func notation(b *Board, m Move) string {
	piece := b.PieceAt(m.From)
	if piece == nil {
		return m.String()
	}
	prefix := piece.Type.getPieceNotation()
	capture := ""
	if b.PieceAt(m.To) != nil {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type == Pawn && m.From.X != m.To.X {
		pawnFile = m.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, capture, m.To.getSquareNotation())
}
