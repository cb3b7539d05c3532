package model

import "fmt"

// VerifyOrigin succeeds when the side to move owns the piece on from and that piece can move.
func VerifyOrigin(b *Board, from Position) error {
	piece := b.PieceAt(from)
	if piece == nil {
		return fmt.Errorf("%w: no piece on %s", ErrInvalidOrigin, from)
	}
	if piece.Owner != b.Turn {
		return fmt.Errorf("%w: %s belongs to %s", ErrInvalidOrigin, from, piece.Owner)
	}
	if len(destinationsFor(b, from, *piece)) == 0 {
		return fmt.Errorf("%w: %s on %s cannot move", ErrInvalidOrigin, piece.Type, from)
	}
	return nil
}

// VerifyDestination succeeds when the side to move's piece on from can reach to.
func VerifyDestination(b *Board, from, to Position) error {
	piece := b.PieceAt(from)
	if piece == nil || piece.Owner != b.Turn {
		return fmt.Errorf("%w: %s to %s", ErrInvalidDestination, from, to)
	}
	for _, p := range destinationsFor(b, from, *piece) {
		if p == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s cannot reach %s", ErrInvalidDestination, piece.Type, from, to)
}

// ValidateMove runs the origin check and then the destination check against b.
// The board is never modified.
func ValidateMove(b *Board, m Move) error {
	if err := VerifyOrigin(b, m.From); err != nil {
		return err
	}
	return VerifyDestination(b, m.From, m.To)
}
