package board

// GenerateMoves returns every legal move for the side to move.
// Order is row-major by source square, then row-major by destination.
func (p *Position) GenerateMoves() *MoveList {
	ml := NewMoveList()
	p.GenerateMovesInto(ml)
	return ml
}

// GenerateMovesInto clears ml and fills it with the legal moves. Search uses
// it with preallocated per-ply lists.
func (p *Position) GenerateMovesInto(ml *MoveList) {
	ml.Clear()
	us := p.SideToMove
	for from := A1; from <= H8; from++ {
		piece := p.PieceAt(from)
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		for to := A1; to <= H8; to++ {
			if p.IsLegalMove(from, to) {
				ml.Add(p.classify(from, to))
			}
		}
	}
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	us := p.SideToMove
	for from := A1; from <= H8; from++ {
		piece := p.PieceAt(from)
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		for to := A1; to <= H8; to++ {
			if p.IsLegalMove(from, to) {
				return true
			}
		}
	}
	return false
}

// LegalTargets returns the destinations reachable from sq, for move-target
// highlighting.
func (p *Position) LegalTargets(from Square) []Square {
	var targets []Square
	for to := A1; to <= H8; to++ {
		if p.IsLegalMove(from, to) {
			targets = append(targets, to)
		}
	}
	return targets
}
