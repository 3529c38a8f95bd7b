package board

import (
	"fmt"
	"strings"
)

// CastleFlags records, per side and wing, whether that castle has already been
// used or forfeited. A flag only ever goes from false to true during play.
type CastleFlags struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// Used reports whether the given castle is no longer available.
func (cf CastleFlags) Used(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cf.WhiteKingSide
		}
		return cf.WhiteQueenSide
	}
	if kingSide {
		return cf.BlackKingSide
	}
	return cf.BlackQueenSide
}

// forfeit marks a castle as used.
func (cf *CastleFlags) forfeit(c Color, kingSide bool) {
	switch {
	case c == White && kingSide:
		cf.WhiteKingSide = true
	case c == White:
		cf.WhiteQueenSide = true
	case kingSide:
		cf.BlackKingSide = true
	default:
		cf.BlackQueenSide = true
	}
}

// String returns the FEN castling field: the castles still available.
func (cf CastleFlags) String() string {
	s := ""
	if !cf.WhiteKingSide {
		s += "K"
	}
	if !cf.WhiteQueenSide {
		s += "Q"
	}
	if !cf.BlackKingSide {
		s += "k"
	}
	if !cf.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// bits packs the flags into 4 bits for hashing.
func (cf CastleFlags) bits() int {
	b := 0
	if cf.WhiteKingSide {
		b |= 1
	}
	if cf.WhiteQueenSide {
		b |= 2
	}
	if cf.BlackKingSide {
		b |= 4
	}
	if cf.BlackQueenSide {
		b |= 8
	}
	return b
}

// Position represents a complete chess position.
// It holds only values, so assignment produces an independent snapshot.
type Position struct {
	// Board is indexed [row][column], row 0 being White's back rank.
	Board [8][8]Piece

	SideToMove Color
	Castle     CastleFlags

	// EnPassantFile is the column a pawn may capture into en passant on this
	// ply, or NoFile.
	EnPassantFile int
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := new(Position)
	p.Clear()
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range backRank {
		p.Board[0][file] = NewPiece(pt, White)
		p.Board[1][file] = WhitePawn
		p.Board[6][file] = BlackPawn
		p.Board[7][file] = NewPiece(pt, Black)
	}
	p.SideToMove = White
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Board[sq.Rank()][sq.File()]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// setPiece places a piece (or NoPiece) on a square.
func (p *Position) setPiece(sq Square, piece Piece) {
	p.Board[sq.Rank()][sq.File()] = piece
}

// Clear resets the position to an empty board with White to move.
func (p *Position) Clear() {
	*p = Position{EnPassantFile: NoFile}
}

// KingSquare locates the king of the given color, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p.Board[rank][file] == king {
				return NewSquare(file, rank)
			}
		}
	}
	return NoSquare
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castle)
	if p.EnPassantFile == NoFile {
		sb.WriteString("En passant: -\n")
	} else {
		fmt.Fprintf(&sb, "En passant: %c\n", 'a'+p.EnPassantFile)
	}
	return sb.String()
}

// Validate checks if the position is valid.
func (p *Position) Validate() error {
	var kings [2]int
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece > BlackKing {
				return fmt.Errorf("invalid piece value %d on %s", piece, NewSquare(file, rank))
			}
			switch piece.Type() {
			case King:
				kings[piece.Color()]++
			case Pawn:
				if rank == 0 || rank == 7 {
					return fmt.Errorf("pawns cannot be on rank 1 or 8")
				}
			}
		}
	}

	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if p.SideToMove >= NoColor {
		return fmt.Errorf("invalid side to move %d", p.SideToMove)
	}
	if p.EnPassantFile < NoFile || p.EnPassantFile > 7 {
		return fmt.Errorf("invalid en passant file %d", p.EnPassantFile)
	}

	// The side that just moved cannot be left in check.
	if p.KingInCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%s king is in check with %s to move", p.SideToMove.Other(), p.SideToMove)
	}

	return nil
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.KingInCheck(p.SideToMove)
}
