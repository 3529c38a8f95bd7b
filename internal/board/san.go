package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation. It is a display
// helper; m is assumed legal in pos.
func (m Move) ToSAN(pos *Position) string {
	if m.IsNone() {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.Castling {
		if m.To > m.From {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m, piece))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion {
			sb.WriteString("=Q")
		}
	}

	after := pos.Copy()
	after.MakeMove(m)
	if after.InCheck() {
		if after.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when another
// piece of the same kind can also reach the destination.
func disambiguation(pos *Position, m Move, piece Piece) string {
	var sameFile, sameRank, ambiguous bool
	for from := A1; from <= H8; from++ {
		if from == m.From || pos.PieceAt(from) != piece {
			continue
		}
		if !pos.IsLegalMove(from, m.To) {
			continue
		}
		ambiguous = true
		if from.File() == m.From.File() {
			sameFile = true
		}
		if from.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + m.From.File()))
	case !sameRank:
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN parses a SAN string and returns the corresponding legal move.
// Only queen promotions are accepted.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		rank := pos.SideToMove.homeRank()
		to := NewSquare(6, rank)
		if len(s) > 3 {
			to = NewSquare(2, rank)
		}
		return pos.NewMove(NewSquare(4, rank), to)
	}

	promotion := false
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) || s[idx+1] != 'Q' {
			return NoMove, fmt.Errorf("%w: unsupported promotion in %q", ErrInvalidMove, s)
		}
		promotion = true
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		idx := strings.IndexByte("PNBRQK", s[0])
		if idx < 0 {
			return NoMove, fmt.Errorf("%w: unknown piece in %q", ErrInvalidMove, s)
		}
		pt = PieceType(idx)
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: missing destination", ErrInvalidMove)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	moves := pos.GenerateMoves()
	for _, m := range moves.Slice() {
		if m.To != dest || pos.PieceAt(m.From).Type() != pt {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if promotion != m.Promotion {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: no legal move matches", ErrInvalidMove)
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}
