package engine

import (
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	// MateScore is the score of a checkmate, negative when White is mated.
	MateScore = 10000
	// MaxPly bounds the search depth and the per-ply move stacks.
	MaxPly = 64
)

// Worker runs a full-width minimax search on a private copy of a position.
// A Worker is not safe for concurrent use; each search owns its own.
type Worker struct {
	pos *board.Position

	// Per-ply move lists so recursion does not allocate.
	moves [MaxPly + 1]board.MoveList

	// nodes is read by progress reporting while the search runs.
	nodes *atomic.Uint64
}

// NewWorker creates a worker searching a copy of pos. nodes may be nil.
func NewWorker(pos *board.Position, nodes *atomic.Uint64) *Worker {
	if nodes == nil {
		nodes = new(atomic.Uint64)
	}
	return &Worker{pos: pos.Copy(), nodes: nodes}
}

// Nodes returns the number of nodes visited so far.
func (w *Worker) Nodes() uint64 {
	return w.nodes.Load()
}

// FindBestMove searches every root move to the given depth and returns the
// best one with its white-positive score. White maximizes and Black
// minimizes; on equal scores the earliest generated move is kept. With no
// legal moves it returns board.NoMove and the terminal score.
func (w *Worker) FindBestMove(depth int) (board.Move, int) {
	if depth < 1 {
		depth = 1
	}
	if depth > MaxPly {
		depth = MaxPly
	}

	w.nodes.Add(1)
	moves := &w.moves[0]
	w.pos.GenerateMovesInto(moves)
	if moves.Len() == 0 {
		return board.NoMove, w.terminalScore()
	}

	maximizing := w.pos.SideToMove == board.White
	best := board.NoMove
	var bestScore int

	for i, m := range moves.Slice() {
		undo := w.pos.MakeMove(m)
		score := w.minimax(depth-1, 1)
		w.pos.UnmakeMove(m, undo)

		if i == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore = m, score
		}
	}
	return best, bestScore
}

// minimax returns the white-positive value of the current position searched
// to depth more plies. A position without legal moves is scored as mate or
// stalemate before the depth cutoff so that a mate delivered on the last
// ply is recognised.
func (w *Worker) minimax(depth, ply int) int {
	w.nodes.Add(1)

	if depth == 0 {
		if !w.pos.HasLegalMoves() {
			return w.terminalScore()
		}
		return Evaluate(w.pos)
	}

	moves := &w.moves[ply]
	w.pos.GenerateMovesInto(moves)
	if moves.Len() == 0 {
		return w.terminalScore()
	}

	maximizing := w.pos.SideToMove == board.White
	var best int
	for i, m := range moves.Slice() {
		undo := w.pos.MakeMove(m)
		score := w.minimax(depth-1, ply+1)
		w.pos.UnmakeMove(m, undo)

		if i == 0 || (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}
	return best
}

// terminalScore scores a position whose side to move has no legal moves.
func (w *Worker) terminalScore() int {
	if !w.pos.InCheck() {
		return 0
	}
	if w.pos.SideToMove == board.White {
		return -MateScore
	}
	return MateScore
}

// FindBestMove searches a private copy of pos to the given depth.
// pos is never modified.
func FindBestMove(pos *board.Position, depth int) (board.Move, int) {
	return NewWorker(pos, nil).FindBestMove(depth)
}
