package model

import (
	"testing"

	"github.com/benbeisheim/chess-engine/internal/testutil"
)

func TestValidateMove(t *testing.T) {
	tests := []struct {
		name    string
		board   *Board
		from    string
		to      string
		wantErr error
	}{
		{"pawn push", NewBoard(), "e2", "e4", nil},
		{"knight jump", NewBoard(), "b1", "c3", nil},
		{"empty origin", NewBoard(), "e4", "e5", ErrInvalidOrigin},
		{"opponent piece", NewBoard(), "e7", "e5", ErrInvalidOrigin},
		{"piece with no moves", NewBoard(), "a1", "a3", ErrInvalidOrigin},
		{"unreachable square", NewBoard(), "e2", "e5", ErrInvalidDestination},
		{"own piece on target", NewBoard(), "b1", "d2", ErrInvalidDestination},
		{"pawn sideways", NewBoard(), "e2", "d3", ErrInvalidDestination},
		{
			name: "black to move",
			board: boardWith(Black, map[string]Piece{
				"e1": w(King), "e8": bl(King), "a8": bl(Rook),
			}),
			from: "a8",
			to:   "a1",
		},
		{
			name: "rook cannot pass a blocker",
			board: boardWith(Black, map[string]Piece{
				"e1": w(King), "e8": bl(King), "a8": bl(Rook), "a4": w(Pawn),
			}),
			from:    "a8",
			to:      "a1",
			wantErr: ErrInvalidDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMove(tt.from, tt.to)
			testutil.AssertNoError(t, err)

			before := tt.board.Clone()
			err = ValidateMove(tt.board, m)
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err)
			} else {
				testutil.AssertErrorIs(t, err, tt.wantErr)
			}
			testutil.AssertEqual(t, tt.board, before, "board modified by validation")
		})
	}
}

func TestVerifyDestinationRequiresMoverPiece(t *testing.T) {
	b := NewBoard()
	err := VerifyDestination(b, MustPosition("b8"), MustPosition("c6"))
	testutil.AssertErrorIs(t, err, ErrInvalidDestination)
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("g1", "f3")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m, Move{From: MustPosition("g1"), To: MustPosition("f3")})
	if m.String() != "g1 f3" {
		t.Errorf("String() = %q; want %q", m.String(), "g1 f3")
	}

	_, err = ParseMove("g1", "z9")
	testutil.AssertErrorIs(t, err, ErrInvalidSquare)
}
