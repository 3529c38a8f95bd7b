package board

import (
	"fmt"
	"strings"
)

// Move is an immutable description of one ply. Captured is the piece taken,
// which for en passant is the pawn removed from beside the destination.
type Move struct {
	From     Square
	To       Square
	Captured Piece

	Promotion bool
	EnPassant bool
	Castling  bool
}

// NoMove represents the absence of a move.
var NoMove = Move{}

// IsNone returns true for NoMove or any move that does not travel.
func (m Move) IsNone() bool {
	return m.From == m.To
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// String returns coordinate notation (e.g., "e2e4", "e7e8q").
// Promotions are always to a queen.
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion {
		s += "q"
	}
	return s
}

// ParseMove resolves coordinate notation against the legal moves of pos.
// A promotion suffix is optional; only "q" is accepted.
func ParseMove(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: bad notation %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	if len(s) == 5 && s[4] != 'q' {
		return NoMove, fmt.Errorf("%w: unsupported promotion piece %c", ErrInvalidMove, s[4])
	}

	m, err := pos.NewMove(from, to)
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 && !m.Promotion {
		return NoMove, fmt.Errorf("%w: %s is not a promotion", ErrInvalidMove, s)
	}
	return m, nil
}

// MaxMoves is the capacity of a MoveList. No reachable position has more
// than 218 legal moves.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list. Exceeding MaxMoves is an invariant violation.
func (ml *MoveList) Add(m Move) {
	if ml.count >= MaxMoves {
		invariant("MoveList.Add", "capacity %d exceeded adding %s", MaxMoves, m)
	}
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoRecord stores what MakeMove needs to restore the position exactly.
// It is only valid for the move and position it was produced from.
type UndoRecord struct {
	Castle        CastleFlags
	EnPassantFile int
	Captured      Piece

	// CaptureSquare is where the captured pawn stood for en passant,
	// NoSquare otherwise.
	CaptureSquare Square

	made bool
}
