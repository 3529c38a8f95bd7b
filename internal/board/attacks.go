package board

// PathClear returns true if every square strictly between from and to is
// empty. The squares must be aligned on a rank, file, or diagonal; otherwise
// the result is false.
func (p *Position) PathClear(from, to Square) bool {
	if !from.IsValid() || !to.IsValid() || !aligned(from, to) {
		return false
	}
	df, dr := delta(from, to)
	stepFile, stepRank := sign(df), sign(dr)

	file, rank := from.File()+stepFile, from.Rank()+stepRank
	for file != to.File() || rank != to.Rank() {
		if p.Board[rank][file] != NoPiece {
			return false
		}
		file += stepFile
		rank += stepRank
	}
	return true
}

// PieceAttacks reports whether the piece standing on from attacks to, by its
// movement geometry alone. Turn ownership and the contents of the target
// square are ignored. Pawns attack only the two forward diagonals; their push
// squares are never attacked (see PawnCanMove).
func (p *Position) PieceAttacks(from, to Square) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	piece := p.PieceAt(from)
	df, dr := delta(from, to)
	adf, adr := abs(df), abs(dr)

	switch piece.Type() {
	case Pawn:
		return adf == 1 && dr == piece.Color().forward()

	case Knight:
		return (adf == 1 && adr == 2) || (adf == 2 && adr == 1)

	case Bishop:
		return adf == adr && p.PathClear(from, to)

	case Rook:
		return (df == 0 || dr == 0) && p.PathClear(from, to)

	case Queen:
		return (adf == adr || df == 0 || dr == 0) && p.PathClear(from, to)

	case King:
		return adf <= 1 && adr <= 1
	}

	return false
}

// PawnCanMove reports whether the pawn on from can move to to: a single push
// or a double push from its starting row onto empty squares, a diagonal
// capture of an enemy piece, or an en-passant capture on the current
// en-passant file.
func (p *Position) PawnCanMove(from, to Square) bool {
	pawn := p.PieceAt(from)
	if pawn.Type() != Pawn || !to.IsValid() {
		return false
	}
	us := pawn.Color()
	dir := us.forward()
	df, dr := delta(from, to)

	switch {
	case df == 0 && dr == dir:
		return p.IsEmpty(to)

	case df == 0 && dr == 2*dir:
		startRank := 1
		if us == Black {
			startRank = 6
		}
		mid := from.Offset(0, dir)
		return from.Rank() == startRank && p.IsEmpty(mid) && p.IsEmpty(to)

	case abs(df) == 1 && dr == dir:
		target := p.PieceAt(to)
		if target != NoPiece {
			return target.Color() != us
		}
		return p.canCaptureEnPassant(from, to)
	}

	return false
}

// canCaptureEnPassant checks the en-passant shape for a diagonal pawn step
// into an empty square.
func (p *Position) canCaptureEnPassant(from, to Square) bool {
	if p.EnPassantFile == NoFile || to.File() != p.EnPassantFile {
		return false
	}
	us := p.PieceAt(from).Color()
	// The capturing pawn stands on its fifth row.
	epRank := 4
	if us == Black {
		epRank = 3
	}
	if from.Rank() != epRank {
		return false
	}
	victim := to.Offset(0, -us.forward())
	return p.PieceAt(victim).Is(Pawn, us.Other())
}

// SquareAttacked returns true if any piece of byColor attacks sq.
func (p *Position) SquareAttacked(sq Square, byColor Color) bool {
	for from := A1; from <= H8; from++ {
		piece := p.PieceAt(from)
		if piece == NoPiece || piece.Color() != byColor {
			continue
		}
		if p.PieceAttacks(from, sq) {
			return true
		}
	}
	return false
}

// KingInCheck returns true if the king of the given color is attacked.
// A position without that king is never in check.
func (p *Position) KingInCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.SquareAttacked(ksq, c.Other())
}
