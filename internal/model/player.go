package model

// Player is one of the two sides of a game.
type Player string

const (
	White Player = "white"
	Black Player = "black"
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

// Title is the capitalized name used in console output ("White", "Black").
func (p Player) Title() string {
	if p == White {
		return "White"
	}
	return "Black"
}

// Seat is a participant sitting at one side of a networked game.
type Seat struct {
	ID       string `json:"name"`
	Color    Player `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}
