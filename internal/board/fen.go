package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Position.
// The move clocks are optional and not tracked.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := new(Position)
	pos.Clear()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastling(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		pos.EnPassantFile = sq.File()
	}

	for i, name := range []string{"half-move clock", "full-move number"} {
		if len(parts) > 4+i {
			if _, err := strconv.Atoi(parts[4+i]); err != nil {
				return nil, fmt.Errorf("invalid %s: %s", name, parts[4+i])
			}
		}
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(rows))
	}

	for i, row := range rows {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range row {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pos.Board[rank][file] = piece
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastling maps the FEN castling field onto used flags. A letter that
// is present means the castle is still available.
func parseCastling(pos *Position, castling string) error {
	pos.Castle = CastleFlags{true, true, true, true}
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.Castle.WhiteKingSide = false
		case 'Q':
			pos.Castle.WhiteQueenSide = false
		case 'k':
			pos.Castle.BlackKingSide = false
		case 'q':
			pos.Castle.BlackQueenSide = false
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return nil
}

// EnPassantSquare returns the square a pawn would capture onto en passant,
// or NoSquare.
func (p *Position) EnPassantSquare() Square {
	if p.EnPassantFile == NoFile {
		return NoSquare
	}
	rank := 5
	if p.SideToMove == Black {
		rank = 2
	}
	return NewSquare(p.EnPassantFile, rank)
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castle.String())

	sb.WriteByte(' ')
	if ep := p.EnPassantSquare(); ep != NoSquare {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 1")
	return sb.String()
}
