package model

// Offset is a relative (column, row) displacement.
type Offset struct {
	DX int
	DY int
}

// maxRayLength is how far a sliding piece may travel along one ray.
const maxRayLength = BoardSize - 1

var (
	knightDirs = []Offset{{-1, 2}, {1, 2}, {-2, 1}, {2, 1}, {-2, -1}, {2, -1}, {-1, -2}, {1, -2}}
	kingDirs   = []Offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs   = []Offset{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = []Offset{{1, 1}, {-1, -1}, {-1, 1}, {1, -1}}
	queenDirs  = append(append([]Offset{}, rookDirs...), bishopDirs...)
)

// pawnDirs returns forward single, forward double, then the two capture diagonals.
func pawnDirs(owner Player) []Offset {
	if owner == White {
		return []Offset{{0, 1}, {0, 2}, {-1, 1}, {1, 1}}
	}
	return []Offset{{0, -1}, {0, -2}, {-1, -1}, {1, -1}}
}

// rays returns the ray directions of a sliding piece type, nil for stepping pieces.
func rays(t PieceType) []Offset {
	switch t {
	case Rook:
		return rookDirs
	case Bishop:
		return bishopDirs
	case Queen:
		return queenDirs
	}
	return nil
}

// IsSliding reports whether the piece type moves along blockable rays.
func (p PieceType) IsSliding() bool {
	return rays(p) != nil
}

// CandidateOffsets lists every displacement the piece's geometry allows, ignoring the board.
// Sliding pieces list each ray out to distance 7, ray by ray.
func CandidateOffsets(p Piece) []Offset {
	switch p.Type {
	case Pawn:
		return pawnDirs(p.Owner)
	case Knight:
		return append([]Offset{}, knightDirs...)
	case King:
		return append([]Offset{}, kingDirs...)
	}
	var out []Offset
	for _, dir := range rays(p.Type) {
		for dist := 1; dist <= maxRayLength; dist++ {
			out = append(out, Offset{DX: dir.DX * dist, DY: dir.DY * dist})
		}
	}
	return out
}

// LegalDestinations lists the squares the piece on from may move to next, in offset-table order.
// Whether the move would leave the mover's king attacked is not considered.
// It returns nil when from is empty.
func LegalDestinations(b *Board, from Position) []Position {
	piece := b.PieceAt(from)
	if piece == nil {
		return nil
	}
	return destinationsFor(b, from, *piece)
}

func destinationsFor(b *Board, from Position, piece Piece) []Position {
	switch piece.Type {
	case Pawn:
		return pawnDestinations(b, from, piece.Owner)
	case Knight:
		return stepDestinations(b, from, piece.Owner, knightDirs)
	case King:
		return stepDestinations(b, from, piece.Owner, kingDirs)
	case Rook, Bishop, Queen:
		return slideDestinations(b, from, piece.Owner, rays(piece.Type))
	default:
		return nil
	}
}

func stepDestinations(b *Board, from Position, mover Player, dirs []Offset) []Position {
	var out []Position
	for _, dir := range dirs {
		target := from.Offset(dir)
		if !target.InBounds() {
			continue
		}
		if occupant := b.PieceAt(target); occupant == nil || occupant.Owner != mover {
			out = append(out, target)
		}
	}
	return out
}

func slideDestinations(b *Board, from Position, mover Player, dirs []Offset) []Position {
	var out []Position
	for _, dir := range dirs {
		target := from.Offset(dir)
		for dist := 1; dist <= maxRayLength && target.InBounds(); dist++ {
			occupant := b.PieceAt(target)
			if occupant == nil {
				out = append(out, target)
			} else {
				if occupant.Owner != mover {
					out = append(out, target)
				}
				break
			}
			target = target.Offset(dir)
		}
	}
	return out
}

// pawnDestinations applies the pawn rule: forward offsets need an empty destination
// (the double step does not look at the square it passes), diagonals need an opposing piece.
func pawnDestinations(b *Board, from Position, mover Player) []Position {
	var out []Position
	for i, dir := range pawnDirs(mover) {
		target := from.Offset(dir)
		if !target.InBounds() {
			continue
		}
		occupant := b.PieceAt(target)
		forward := i < 2
		if forward && occupant == nil {
			out = append(out, target)
		}
		if !forward && occupant != nil && occupant.Owner != mover {
			out = append(out, target)
		}
	}
	return out
}

// AllMoves lists every legal move of the side to move, walking pieces in board order.
func AllMoves(b *Board) []Move {
	var moves []Move
	for _, o := range b.PiecesOf(b.Turn) {
		for _, to := range destinationsFor(b, o.Position, o.Piece) {
			moves = append(moves, Move{From: o.Position, To: to})
		}
	}
	return moves
}

// reachable is the union of every destination of owner's pieces.
func reachable(b *Board, owner Player) map[Position]bool {
	squares := make(map[Position]bool)
	for _, o := range b.PiecesOf(owner) {
		for _, p := range destinationsFor(b, o.Position, o.Piece) {
			squares[p] = true
		}
	}
	return squares
}
