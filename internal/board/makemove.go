package board

import "fmt"

// rookCastleSquares returns the rook's origin and destination for a castle
// by c on the given wing.
func rookCastleSquares(c Color, kingSide bool) (from, to Square) {
	rank := c.homeRank()
	if kingSide {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// MakeMove applies m to p and returns the record needed to undo it.
// m must be legal in p; callers outside search should use Apply.
func (p *Position) MakeMove(m Move) UndoRecord {
	piece := p.PieceAt(m.From)
	if piece == NoPiece {
		invariant("MakeMove", "no piece on %s for %s", m.From, m)
	}
	us := piece.Color()
	them := us.Other()

	undo := UndoRecord{
		Castle:        p.Castle,
		EnPassantFile: p.EnPassantFile,
		Captured:      p.PieceAt(m.To),
		CaptureSquare: NoSquare,
		made:          true,
	}

	if m.EnPassant {
		capSq := NewSquare(m.To.File(), m.From.Rank())
		undo.Captured = p.PieceAt(capSq)
		undo.CaptureSquare = capSq
		p.setPiece(capSq, NoPiece)
	}

	p.setPiece(m.From, NoPiece)
	if m.Promotion {
		piece = NewPiece(Queen, us)
	}
	p.setPiece(m.To, piece)

	if m.Castling {
		rookFrom, rookTo := rookCastleSquares(us, m.To.File() > m.From.File())
		p.setPiece(rookTo, p.PieceAt(rookFrom))
		p.setPiece(rookFrom, NoPiece)
	}

	// Castle flags.
	home := us.homeRank()
	switch {
	case piece.Type() == King:
		p.Castle.forfeit(us, true)
		p.Castle.forfeit(us, false)
	case piece.Type() == Rook && m.From == NewSquare(7, home):
		p.Castle.forfeit(us, true)
	case piece.Type() == Rook && m.From == NewSquare(0, home):
		p.Castle.forfeit(us, false)
	}
	if undo.Captured.Is(Rook, them) {
		switch m.To {
		case NewSquare(7, them.homeRank()):
			p.Castle.forfeit(them, true)
		case NewSquare(0, them.homeRank()):
			p.Castle.forfeit(them, false)
		}
	}

	p.EnPassantFile = NoFile
	if piece.Type() == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassantFile = m.From.File()
	}

	p.SideToMove = them
	return undo
}

// UnmakeMove restores the position to its state before m was made.
// undo must be the record MakeMove returned for m on this position.
func (p *Position) UnmakeMove(m Move, undo UndoRecord) {
	if !undo.made {
		invariant("UnmakeMove", "record for %s was not produced by MakeMove", m)
	}
	piece := p.PieceAt(m.To)
	if piece == NoPiece {
		invariant("UnmakeMove", "no piece on %s to take back %s", m.To, m)
	}
	us := piece.Color()

	if m.Promotion {
		piece = NewPiece(Pawn, us)
	}
	p.setPiece(m.From, piece)

	if m.EnPassant {
		p.setPiece(m.To, NoPiece)
		p.setPiece(undo.CaptureSquare, undo.Captured)
	} else {
		p.setPiece(m.To, undo.Captured)
	}

	if m.Castling {
		rookFrom, rookTo := rookCastleSquares(us, m.To.File() > m.From.File())
		p.setPiece(rookFrom, p.PieceAt(rookTo))
		p.setPiece(rookTo, NoPiece)
	}

	p.Castle = undo.Castle
	p.EnPassantFile = undo.EnPassantFile
	p.SideToMove = us
}

// Apply validates m against pos and, if legal, returns a new position with m
// made. pos itself is never modified.
func Apply(pos *Position, m Move) (*Position, UndoRecord, error) {
	if !pos.IsLegal(m) {
		return nil, UndoRecord{}, fmt.Errorf("%w: %s", ErrInvalidMove, m)
	}
	next := pos.Copy()
	undo := next.MakeMove(m)
	return next, undo, nil
}
