package model

import "errors"

var (
	// ErrInvalidOrigin means the side to move has no movable piece on the origin square.
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrInvalidDestination means the origin piece cannot reach the destination square.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidSquare means a coordinate could not be parsed.
	ErrInvalidSquare = errors.New("invalid square")

	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
	ErrAlreadyQueued = errors.New("player already in queue")
)
