package model

import (
	"fmt"
	"strings"
)

type PieceType string

// letter is the lowercase identifying character of the piece type.
func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '?'
}

// getPieceNotation is the SAN prefix of the piece type; pawns have none.
func (p PieceType) getPieceNotation() string {
	if p == Pawn {
		return ""
	}
	return strings.ToUpper(string(p.letter()))
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is an immutable (type, owner) pair. Where it stands is known only to the Board.
type Piece struct {
	Type  PieceType `json:"type"`
	Owner Player    `json:"color"`
}

// Glyph is the piece letter, lowercase for White and uppercase for Black.
func (p Piece) Glyph() byte {
	c := p.Type.letter()
	if p.Owner == Black {
		return c - 'a' + 'A'
	}
	return c
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Owner, p.Type)
}

// Board is the game state: an 8x8 grid of pieces plus the side to move.
// Squares[y][x] holds the piece on column x (a=0) and row y+1.
type Board struct {
	Squares [BoardSize][BoardSize]*Piece `json:"board"`
	Turn    Player                       `json:"toMove"`
}

// NewEmptyBoard returns a board with no pieces and White to move.
func NewEmptyBoard() *Board {
	return &Board{Turn: White}
}

// NewBoard returns the standard initial layout with White to move.
func NewBoard() *Board {
	board := NewEmptyBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, t := range backRank {
		board.Squares[0][x] = &Piece{Type: t, Owner: White}
		board.Squares[1][x] = &Piece{Type: Pawn, Owner: White}
		board.Squares[6][x] = &Piece{Type: Pawn, Owner: Black}
		board.Squares[7][x] = &Piece{Type: t, Owner: Black}
	}
	return board
}

// CurrentPlayer returns the side to move.
func (b *Board) CurrentPlayer() Player {
	return b.Turn
}

// PieceAt returns the piece on pos, or nil when the square is empty or off the board.
func (b *Board) PieceAt(pos Position) *Piece {
	if !pos.InBounds() {
		return nil
	}
	return b.Squares[pos.Y][pos.X]
}

// Place puts a piece on pos, replacing whatever stood there.
func (b *Board) Place(pos Position, piece Piece) {
	if !pos.InBounds() {
		return
	}
	b.Squares[pos.Y][pos.X] = &piece
}

// Clear empties pos.
func (b *Board) Clear(pos Position) {
	if !pos.InBounds() {
		return
	}
	b.Squares[pos.Y][pos.X] = nil
}

// Apply commits an already validated move: any piece on the destination is dropped,
// the moving piece is relocated and the turn passes. The captured piece, if any, is returned.
func (b *Board) Apply(m Move) *Piece {
	piece := b.Squares[m.From.Y][m.From.X]
	captured := b.Squares[m.To.Y][m.To.X]
	b.Squares[m.From.Y][m.From.X] = nil
	b.Squares[m.To.Y][m.To.X] = piece
	b.switchTurn()
	return captured
}

func (b *Board) switchTurn() {
	b.Turn = b.Turn.Opponent()
}

// Occupant is a piece together with the square it stands on.
type Occupant struct {
	Position Position
	Piece    Piece
}

// Pieces lists every occupied square, row 1 first and column a first within a row.
func (b *Board) Pieces() []Occupant {
	out := make([]Occupant, 0, 32)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.Squares[y][x]; p != nil {
				out = append(out, Occupant{Position: Position{X: x, Y: y}, Piece: *p})
			}
		}
	}
	return out
}

// PiecesOf lists the occupied squares of one side in the same order as Pieces.
func (b *Board) PiecesOf(owner Player) []Occupant {
	var out []Occupant
	for _, o := range b.Pieces() {
		if o.Piece.Owner == owner {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Squares[y][x] != nil {
				n++
			}
		}
	}
	return n
}

// FindKing returns the square of owner's king.
func (b *Board) FindKing(owner Player) (Position, bool) {
	for _, o := range b.Pieces() {
		if o.Piece.Type == King && o.Piece.Owner == owner {
			return o.Position, true
		}
	}
	return Position{}, false
}

// Clone returns a copy with its own grid. Pieces are immutable, so their pointers are shared.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}
