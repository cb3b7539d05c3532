package model

import (
	"fmt"
	"strings"
)

const (
	BoardSize = 8

	MinColumn = 'a'
	MaxColumn = 'h'
	MinRow    = 1
	MaxRow    = 8
)

// Position is a square on the board. X is the column index (a=0), Y the row index (row 1 = 0).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPosition builds a Position from a column letter and a 1-based row.
func NewPosition(column byte, row int) Position {
	return Position{X: int(column - MinColumn), Y: row - 1}
}

// ParsePosition reads a square such as "e4".
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	col, row := s[0], s[1]
	if col < MinColumn || col > MaxColumn || row < '1' || row > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewPosition(col, int(row-'0')), nil
}

// MustPosition is ParsePosition for literals known to be valid.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// InBounds reports whether the position lies on the 8x8 board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Column is the file letter, 'a'..'h'.
func (p Position) Column() byte {
	return byte(p.X) + MinColumn
}

// Row is the 1-based rank number.
func (p Position) Row() int {
	return p.Y + 1
}

// IsDark reports the square color: dark when column index plus row is odd.
func (p Position) IsDark() bool {
	return (p.X+p.Row())%2 == 1
}

// Offset returns the square shifted by (dx, dy); the result may be off the board.
func (p Position) Offset(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}

func (p Position) String() string {
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.Column(), p.Row())
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.Column())
}
