package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/benbeisheim/chess-engine/internal/testutil"
)

// boardWith builds a board holding only the given pieces, keyed by square.
func boardWith(turn Player, pieces map[string]Piece) *Board {
	b := NewEmptyBoard()
	b.Turn = turn
	for sq, p := range pieces {
		b.Place(MustPosition(sq), p)
	}
	return b
}

func w(t PieceType) Piece { return Piece{Type: t, Owner: White} }
func bl(t PieceType) Piece { return Piece{Type: t, Owner: Black} }

func squares(names ...string) []Position {
	out := make([]Position, len(names))
	for i, n := range names {
		out[i] = MustPosition(n)
	}
	return out
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("white to move", func(t *testing.T) {
		if b.CurrentPlayer() != White {
			t.Errorf("CurrentPlayer() = %v; want white", b.CurrentPlayer())
		}
	})

	t.Run("thirty two pieces", func(t *testing.T) {
		if got := b.Count(); got != 32 {
			t.Errorf("Count() = %d; want 32", got)
		}
		if got := len(b.PiecesOf(White)); got != 16 {
			t.Errorf("white pieces = %d; want 16", got)
		}
		if got := len(b.PiecesOf(Black)); got != 16 {
			t.Errorf("black pieces = %d; want 16", got)
		}
	})

	tests := []struct {
		square string
		want   Piece
	}{
		{"a1", w(Rook)},
		{"b1", w(Knight)},
		{"c1", w(Bishop)},
		{"d1", w(Queen)},
		{"e1", w(King)},
		{"h1", w(Rook)},
		{"e2", w(Pawn)},
		{"e7", bl(Pawn)},
		{"d8", bl(Queen)},
		{"e8", bl(King)},
		{"g8", bl(Knight)},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			got := b.PieceAt(MustPosition(tt.square))
			if got == nil {
				t.Fatalf("PieceAt(%s) = nil", tt.square)
			}
			testutil.AssertEqual(t, *got, tt.want)
		})
	}

	t.Run("middle is empty", func(t *testing.T) {
		for row := 3; row <= 6; row++ {
			for c := byte('a'); c <= 'h'; c++ {
				if p := b.PieceAt(NewPosition(c, row)); p != nil {
					t.Errorf("PieceAt(%c%d) = %v; want nil", c, row, p)
				}
			}
		}
	})
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		piece Piece
		want  byte
	}{
		{w(Pawn), 'p'},
		{w(Knight), 'n'},
		{w(Bishop), 'b'},
		{w(Rook), 'r'},
		{w(Queen), 'q'},
		{w(King), 'k'},
		{bl(Pawn), 'P'},
		{bl(Knight), 'N'},
		{bl(King), 'K'},
		{bl(Queen), 'Q'},
	}
	for _, tt := range tests {
		if got := tt.piece.Glyph(); got != tt.want {
			t.Errorf("%v.Glyph() = %c; want %c", tt.piece, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	t.Run("quiet move", func(t *testing.T) {
		b := NewBoard()
		captured := b.Apply(Move{From: MustPosition("e2"), To: MustPosition("e4")})

		if captured != nil {
			t.Errorf("captured = %v; want nil", captured)
		}
		if b.Turn != Black {
			t.Errorf("Turn = %v; want black", b.Turn)
		}
		if b.Count() != 32 {
			t.Errorf("Count() = %d; want 32", b.Count())
		}
		if b.PieceAt(MustPosition("e2")) != nil {
			t.Error("origin square still occupied")
		}
		testutil.AssertEqual(t, *b.PieceAt(MustPosition("e4")), w(Pawn))
	})

	t.Run("capture drops exactly one piece", func(t *testing.T) {
		b := boardWith(Black, map[string]Piece{
			"e1": w(King), "d4": w(Pawn),
			"e8": bl(King), "e5": bl(Pawn),
		})
		before := b.Count()
		captured := b.Apply(Move{From: MustPosition("e5"), To: MustPosition("d4")})

		if captured == nil || *captured != w(Pawn) {
			t.Fatalf("captured = %v; want white pawn", captured)
		}
		if b.Count() != before-1 {
			t.Errorf("Count() = %d; want %d", b.Count(), before-1)
		}
		if b.Turn != White {
			t.Errorf("Turn = %v; want white", b.Turn)
		}
	})
}

func TestClone(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	c.Apply(Move{From: MustPosition("g1"), To: MustPosition("f3")})

	if b.PieceAt(MustPosition("g1")) == nil {
		t.Error("source board changed after moving on the clone")
	}
	if b.Turn != White {
		t.Errorf("source Turn = %v; want white", b.Turn)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"a1", Position{X: 0, Y: 0}, false},
		{"e4", Position{X: 4, Y: 3}, false},
		{"h8", Position{X: 7, Y: 7}, false},
		{" c6 ", Position{X: 2, Y: 5}, false},
		{"i1", Position{}, true},
		{"a9", Position{}, true},
		{"a0", Position{}, true},
		{"", Position{}, true},
		{"e44", Position{}, true},
		{"E4", Position{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSquare) {
					t.Errorf("ParsePosition(%q) error = %v; want ErrInvalidSquare", tt.in, err)
				}
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			if want := strings.TrimSpace(tt.in); got.String() != want {
				t.Errorf("String() = %q; want %q", got.String(), want)
			}
		})
	}
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		square string
		dark   bool
	}{
		{"a1", true},
		{"b1", false},
		{"c1", true},
		{"d1", false},
		{"h1", false},
		{"a8", false},
		{"h8", true},
		{"e4", false},
		{"d4", true},
	}
	for _, tt := range tests {
		if got := MustPosition(tt.square).IsDark(); got != tt.dark {
			t.Errorf("%s.IsDark() = %v; want %v", tt.square, got, tt.dark)
		}
	}
}
