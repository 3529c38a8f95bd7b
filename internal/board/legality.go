package board

import "fmt"

// IsLegalMove reports whether the side to move may play from -> to.
// Cheap filters run first; the authoritative king-safety test plays the move
// on a scratch copy and never touches p.
func (p *Position) IsLegalMove(from, to Square) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return false
	}
	if target := p.PieceAt(to); target != NoPiece && target.Color() == piece.Color() {
		return false
	}

	if !p.hasMoveShape(piece, from, to) {
		return false
	}

	scratch := *p
	scratch.MakeMove(p.classify(from, to))
	return !scratch.KingInCheck(piece.Color())
}

// hasMoveShape applies the per-piece movement rule, routing castling through
// CanCastle.
func (p *Position) hasMoveShape(piece Piece, from, to Square) bool {
	switch piece.Type() {
	case Pawn:
		return p.PawnCanMove(from, to)
	case King:
		if isCastlingShape(piece, from, to) {
			return p.CanCastle(piece.Color(), to.File() > from.File())
		}
	}
	return p.PieceAttacks(from, to)
}

// isCastlingShape reports a king on its home square moving two files along
// its back rank.
func isCastlingShape(piece Piece, from, to Square) bool {
	if piece.Type() != King {
		return false
	}
	home := NewSquare(4, piece.Color().homeRank())
	df, dr := delta(from, to)
	return from == home && dr == 0 && abs(df) == 2
}

// CanCastle reports whether c may castle on the given wing right now: king
// and rook on their home squares with the castle unused, the squares between
// them empty, the king not in check, and no square the king crosses (start
// and end included) attacked.
func (p *Position) CanCastle(c Color, kingSide bool) bool {
	rank := c.homeRank()
	kingSq := NewSquare(4, rank)
	rookFile, step := 0, -1
	if kingSide {
		rookFile, step = 7, 1
	}
	rookSq := NewSquare(rookFile, rank)

	if !p.PieceAt(kingSq).Is(King, c) || !p.PieceAt(rookSq).Is(Rook, c) {
		return false
	}
	if p.Castle.Used(c, kingSide) {
		return false
	}
	if !p.PathClear(kingSq, rookSq) {
		return false
	}
	if p.KingInCheck(c) {
		return false
	}

	them := c.Other()
	for i := 0; i <= 2; i++ {
		if p.SquareAttacked(NewSquare(4+i*step, rank), them) {
			return false
		}
	}
	return true
}

// classify builds the Move for from -> to, tagging castling, promotion and
// en passant. It assumes the move has already passed the shape checks.
func (p *Position) classify(from, to Square) Move {
	piece := p.PieceAt(from)
	m := Move{From: from, To: to, Captured: p.PieceAt(to)}

	switch piece.Type() {
	case King:
		m.Castling = isCastlingShape(piece, from, to)
	case Pawn:
		us := piece.Color()
		if to.Rank() == us.Other().homeRank() {
			m.Promotion = true
		}
		if from.File() != to.File() && m.Captured == NoPiece {
			m.EnPassant = true
			m.Captured = NewPiece(Pawn, us.Other())
		}
	}
	return m
}

// NewMove validates from -> to for the side to move and returns the fully
// classified move, or an error wrapping ErrInvalidMove.
func (p *Position) NewMove(from, to Square) (Move, error) {
	if !p.IsLegalMove(from, to) {
		return NoMove, fmt.Errorf("%w: %s%s", ErrInvalidMove, from, to)
	}
	return p.classify(from, to), nil
}

// IsLegal reports whether m is a legal move in p, including its special-move
// tags.
func (p *Position) IsLegal(m Move) bool {
	if !p.IsLegalMove(m.From, m.To) {
		return false
	}
	return p.classify(m.From, m.To) == m
}
