// Package console is the interactive text front end: it reads commands line by line,
// drives the rules engine and prints the board after every command.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chess-engine/internal/model"
)

const (
	msgWelcome      = "Welcome to Chess!"
	msgHelpHint     = "Type 'help' for a list of commands."
	msgGoodbye      = "Goodbye!"
	msgCurrentGame  = "Current Game:"
	msgUnknown      = "I didn't understand that.  Type 'help' for a list of commands."
	msgBadMoveInput = "Invalid input for move command"
	msgBadOrigin    = "invalid origin for move command"
	msgBadDest      = "invalid destination for move command"
	msgDraw         = "DRAW"
	prompt          = "> "
)

// Session is one console conversation. It owns the current board.
type Session struct {
	in        *bufio.Reader
	out       io.Writer
	evaluator model.Evaluator
	board     *model.Board
}

// Option customizes a Session.
type Option func(*Session)

// WithBoard makes the first game start from b instead of the standard layout.
// Games started later with "new", or after a game ends, use the standard layout.
func WithBoard(b *model.Board) Option {
	return func(s *Session) {
		s.board = b
	}
}

func NewSession(in io.Reader, out io.Writer, evaluator model.Evaluator, opts ...Option) *Session {
	s := &Session{
		in:        bufio.NewReader(in),
		out:       out,
		evaluator: evaluator,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writeOutput(msgWelcome)
	return s
}

// Board exposes the current game state.
func (s *Session) Board() *model.Board {
	return s.board
}

// Run loops until "quit" or end of input. Only read failures are returned.
func (s *Session) Run() error {
	s.writeOutput(msgHelpHint)
	if s.board == nil {
		s.doNewGame()
	}

	for {
		s.showBoard()
		s.writeOutput(s.board.Turn.Title() + "'s Move")

		input, err := s.getInput()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if input == "" {
			continue
		}

		switch {
		case input == "help":
			s.showCommands()
		case input == "new":
			s.doNewGame()
		case input == "quit":
			s.writeOutput(msgGoodbye)
			return nil
		case input == "board":
			s.writeOutput(msgCurrentGame)
		case input == "list":
			s.displayMoveList()
		case strings.HasPrefix(input, "move"):
			if s.performMove(input) {
				s.checkGameOver()
			}
		default:
			s.writeOutput(msgUnknown)
		}
	}
}

func (s *Session) writeOutput(str string) {
	fmt.Fprintln(s.out, str)
}

// getInput prompts and reads one line. A final line without newline is still returned.
func (s *Session) getInput() (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) doNewGame() {
	s.board = model.NewBoard()
}

func (s *Session) showBoard() {
	s.writeOutput(Render(s.board))
}

func (s *Session) showCommands() {
	s.writeOutput("Possible commands: ")
	s.writeOutput("    'help'                       Show this menu")
	s.writeOutput("    'quit'                       Quit Chess")
	s.writeOutput("    'new'                        Create a new game")
	s.writeOutput("    'board'                      Show the chess board")
	s.writeOutput("    'list'                       List all possible moves")
	s.writeOutput("    'move <colrow> <colrow>'     Make a move")
}

func (s *Session) displayMoveList() {
	for _, m := range model.AllMoves(s.board) {
		s.writeOutput(m.String())
	}
}

// performMove parses, validates and applies a move command, reporting whether it was applied.
func (s *Session) performMove(input string) bool {
	move, ok := parseMoveCommand(input)
	if !ok {
		s.writeOutput(msgBadMoveInput)
		return false
	}
	if err := model.VerifyOrigin(s.board, move.From); err != nil {
		s.writeOutput(msgBadOrigin)
		return false
	}
	if err := model.VerifyDestination(s.board, move.From, move.To); err != nil {
		s.writeOutput(msgBadDest)
		return false
	}
	s.board.Apply(move)
	return true
}

func (s *Session) checkGameOver() {
	outcome := s.evaluator.Outcome(s.board)
	switch outcome.Status {
	case model.StatusDraw:
		s.writeOutput(msgDraw)
		s.doNewGame()
	case model.StatusCheckmate:
		s.writeOutput("Checkmate - " + outcome.Winner.Title() + " WINS!")
		s.doNewGame()
	}
}

// parseMoveCommand reads "move <colrow> <colrow>"; the space between squares is optional
// and anything after the destination square is ignored.
func parseMoveCommand(input string) (model.Move, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(input, "move"))
	if len(rest) < 4 {
		return model.Move{}, false
	}
	origin := rest[:2]
	dest := strings.TrimSpace(rest[2:])
	if len(dest) > 2 {
		dest = dest[:2]
	}
	move, err := model.ParseMove(origin, dest)
	if err != nil {
		return model.Move{}, false
	}
	return move, true
}
