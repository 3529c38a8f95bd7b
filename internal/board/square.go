// Package board implements the chess rules: an 8x8 board model, attack and
// legality queries, legal move generation, and reversible make/unmake.
package board

import "fmt"

// Square names one cell of the grid as row*8+column, with row 0 on White's
// side. It indexes Position.Board as [sq.Rank()][sq.File()].
type Square uint8

// One line per row, a-file to h-file.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3, 8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

// NoSquare is the off-board sentinel. NewSquare returns it for coordinates
// outside the grid.
const NoSquare Square = 64

// NoFile marks the absence of an en-passant file.
const NoFile = -1

// NewSquare returns the square at column file and row rank, or NoSquare.
func NewSquare(file, rank int) Square {
	if !onBoard(file, rank) {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// File is the column, 0 for a through 7 for h.
func (sq Square) File() int { return int(sq) % 8 }

// Rank is the row, 0 for White's back rank.
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) IsValid() bool { return sq < NoSquare }

// Offset steps df columns and dr rows away, returning NoSquare when the step
// leaves the grid.
func (sq Square) Offset(df, dr int) Square {
	if !sq.IsValid() {
		return NoSquare
	}
	return NewSquare(sq.File()+df, sq.Rank()+dr)
}

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare reads a lowercase coordinate such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 {
		if sq := NewSquare(int(s[0])-'a', int(s[1])-'1'); sq.IsValid() {
			return sq, nil
		}
	}
	return NoSquare, fmt.Errorf("invalid square %q", s)
}

// delta returns the column and row differences from one square to another.
func delta(from, to Square) (df, dr int) {
	return to.File() - from.File(), to.Rank() - from.Rank()
}

// aligned reports whether two distinct squares share a row, column or
// diagonal.
func aligned(from, to Square) bool {
	df, dr := delta(from, to)
	if df == 0 && dr == 0 {
		return false
	}
	return df == 0 || dr == 0 || abs(df) == abs(dr)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
