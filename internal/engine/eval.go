// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Material values in pawns. The bishop is deliberately valued above the
// knight.
const (
	PawnValue   = 1
	KnightValue = 3
	BishopValue = 4
	RookValue   = 5
	QueenValue  = 9
	KingValue   = 0
)

var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// PieceValue returns the material value of a piece type.
func PieceValue(pt board.PieceType) int {
	if pt > board.NoPieceType {
		return 0
	}
	return pieceValues[pt]
}

// Evaluate returns White's material minus Black's.
// Positive scores favor White regardless of the side to move.
func Evaluate(pos *board.Position) int {
	score := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := pos.Board[rank][file]
			if piece == board.NoPiece {
				continue
			}
			v := PieceValue(piece.Type())
			if piece.Color() == board.White {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}
