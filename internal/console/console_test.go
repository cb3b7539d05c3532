package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benbeisheim/chess-engine/internal/model"
	"github.com/benbeisheim/chess-engine/internal/testutil"
)

func runSession(t *testing.T, input string) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, model.Evaluator{})
	testutil.AssertNoError(t, s.Run())
	return s, out.String()
}

func TestSessionMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "greeting and quit",
			input: "quit\n",
			want:  []string{"Welcome to Chess!", "Type 'help' for a list of commands.", "White's Move", "> ", "Goodbye!"},
		},
		{
			name:  "help",
			input: "help\nquit\n",
			want:  []string{"Possible commands: ", "'move <colrow> <colrow>'     Make a move"},
		},
		{
			name:  "board",
			input: "board\n",
			want:  []string{"Current Game:"},
		},
		{
			name:  "unknown command",
			input: "castle\n",
			want:  []string{"I didn't understand that.  Type 'help' for a list of commands."},
		},
		{
			name:  "malformed move",
			input: "move e2\n",
			want:  []string{"Invalid input for move command"},
		},
		{
			name:  "square off the board",
			input: "move e2 e9\n",
			want:  []string{"Invalid input for move command"},
		},
		{
			name:  "empty origin",
			input: "move e4 e5\n",
			want:  []string{"invalid origin for move command"},
		},
		{
			name:  "opponent origin",
			input: "move e7 e5\n",
			want:  []string{"invalid origin for move command"},
		},
		{
			name:  "unreachable destination",
			input: "move e2 e5\n",
			want:  []string{"invalid destination for move command"},
		},
		{
			name:  "list moves",
			input: "list\n",
			want:  []string{"b1 a3\n", "b1 c3\n", "e2 e4\n", "h2 h3\n"},
		},
		{
			name:  "turn passes",
			input: "move e2 e4\n",
			want:  []string{"Black's Move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := runSession(t, tt.input)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q\n%s", w, out)
				}
			}
		})
	}
}

func TestSessionIgnoresTextAfterDestination(t *testing.T) {
	s, out := runSession(t, "move e2 e4 please\n")
	if strings.Contains(out, "Invalid input for move command") {
		t.Errorf("move with trailing text was rejected\n%s", out)
	}
	if p := s.Board().PieceAt(model.MustPosition("e4")); p == nil || p.Type != model.Pawn {
		t.Errorf("PieceAt(e4) = %v; want white pawn", p)
	}
}

func TestSessionDrawStartsNewGame(t *testing.T) {
	b := model.NewEmptyBoard()
	b.Place(model.MustPosition("e1"), model.Piece{Type: model.King, Owner: model.White})
	b.Place(model.MustPosition("c6"), model.Piece{Type: model.Knight, Owner: model.White})
	b.Place(model.MustPosition("e8"), model.Piece{Type: model.King, Owner: model.Black})
	b.Place(model.MustPosition("a7"), model.Piece{Type: model.Pawn, Owner: model.Black})

	var out bytes.Buffer
	s := NewSession(strings.NewReader("move c6 a7\n"), &out, model.Evaluator{}, WithBoard(b))
	testutil.AssertNoError(t, s.Run())

	got := out.String()
	i := strings.Index(got, "DRAW\n")
	if i < 0 {
		t.Fatalf("output missing DRAW\n%s", got)
	}
	if !strings.Contains(got[i:], Render(model.NewBoard())) {
		t.Errorf("no fresh board after DRAW\n%s", got[i:])
	}
	testutil.AssertEqual(t, s.Board(), model.NewBoard())
	testutil.AssertEqual(t, s.Board().Count(), 32)
}

func TestSessionMoveWithoutSpace(t *testing.T) {
	s, _ := runSession(t, "move g1f3\n")
	b := s.Board()
	testutil.AssertEqual(t, b.Turn, model.Black)
	if p := b.PieceAt(model.MustPosition("f3")); p == nil || p.Type != model.Knight {
		t.Errorf("PieceAt(f3) = %v; want white knight", p)
	}
}

func TestSessionFoolsMate(t *testing.T) {
	input := strings.Join([]string{
		"move f2 f3",
		"move e7 e5",
		"move g2 g4",
		"move d8 h4",
		"quit",
	}, "\n") + "\n"

	s, out := runSession(t, input)
	if !strings.Contains(out, "Checkmate - Black WINS!") {
		t.Errorf("output missing checkmate announcement\n%s", out)
	}
	testutil.AssertEqual(t, s.Board(), model.NewBoard(), "a fresh game starts after mate")
}

func TestSessionNewGame(t *testing.T) {
	s, _ := runSession(t, "move e2 e4\nnew\n")
	testutil.AssertEqual(t, s.Board(), model.NewBoard())
}

func TestSessionLastLineWithoutNewline(t *testing.T) {
	_, out := runSession(t, "move d2 d4\nquit")
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("final line was not read\n%s", out)
	}
}

func TestRender(t *testing.T) {
	got := Render(model.NewBoard())
	lines := strings.Split(got, "\n")

	want := []string{
		"",
		"    a   b   c   d   e   f   g   h  ",
		"  +---+---+---+---+---+---+---+---+",
		"8 | R | N | B | Q | K | B | N | R | 8",
		"  +---+---+---+---+---+---+---+---+",
		"7 | P | P | P | P | P | P | P | P | 7",
		"  +---+---+---+---+---+---+---+---+",
		"6 |   |   |   |   |   |   |   |   | 6",
	}
	testutil.AssertEqual(t, lines[:len(want)], want)

	tail := []string{
		"1 | r | n | b | q | k | b | n | r | 1",
		"  +---+---+---+---+---+---+---+---+",
		"    a   b   c   d   e   f   g   h  ",
		"",
	}
	testutil.AssertEqual(t, lines[len(lines)-len(tail):], tail)
}
