package engine

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

// SearchInfo describes one completed iterative-deepening depth.
type SearchInfo struct {
	Depth int
	Score int
	Move  board.Move
	Nodes uint64
	Time  time.Duration
}

// SearchResult is the outcome of a full search. Move is board.NoMove when
// the side to move has no legal moves.
type SearchResult struct {
	ID     string
	Move   board.Move
	Score  int
	Depth  int
	Nodes  uint64
	Cached bool
	Err    error
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps difficulty to maximum search depth in plies.
var DifficultySettings = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// ParseDifficulty converts "easy", "medium" or "hard" to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Config holds engine settings.
type Config struct {
	// MaxDepth is used when a search is requested without a depth.
	MaxDepth int
	Logger   zerolog.Logger
	// Cache is optional.
	Cache *storage.Cache
}

// DefaultConfig returns settings for the Medium difficulty with logging off.
func DefaultConfig() Config {
	return Config{
		MaxDepth: DifficultySettings[Medium],
		Logger:   zerolog.Nop(),
	}
}

// Engine is the chess AI engine.
type Engine struct {
	cfg Config
	log zerolog.Logger

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 1
	}
	return &Engine{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "engine").Logger(),
	}
}

// SetDifficulty sets the default search depth from a difficulty preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	if depth, ok := DifficultySettings[d]; ok {
		e.cfg.MaxDepth = depth
	}
}

// MaxDepth returns the default search depth.
func (e *Engine) MaxDepth() int {
	return e.cfg.MaxDepth
}

// Search runs iterative deepening on a copy of pos from depth 1 to maxDepth
// and returns the final depth's result. Shallower depths only feed OnInfo.
// A maxDepth below 1 uses the configured default.
func (e *Engine) Search(pos *board.Position, maxDepth int) SearchResult {
	if maxDepth < 1 {
		maxDepth = e.cfg.MaxDepth
	}
	return e.search(pos, maxDepth, nil, nil)
}

// search is Search with an externally owned node counter and a per-depth
// hook, used by the Coordinator for progress reporting.
func (e *Engine) search(pos *board.Position, maxDepth int, nodes *atomic.Uint64, onDepth func(int)) SearchResult {
	if maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	snapshot := pos.Copy()
	hash := snapshot.Hash()

	if res, ok := e.lookup(snapshot, hash, maxDepth); ok {
		if nodes != nil {
			nodes.Store(res.Nodes)
		}
		if onDepth != nil {
			onDepth(res.Depth)
		}
		e.report(SearchInfo{Depth: res.Depth, Score: res.Score, Move: res.Move, Nodes: res.Nodes})
		return res
	}

	w := NewWorker(snapshot, nodes)
	start := w.Nodes()
	startTime := time.Now()

	var res SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		move, score := w.FindBestMove(depth)
		res = SearchResult{
			Move:  move,
			Score: score,
			Depth: depth,
			Nodes: w.Nodes() - start,
		}

		e.log.Debug().
			Int("depth", depth).
			Str("move", move.String()).
			Int("score", score).
			Uint64("nodes", res.Nodes).
			Msg("depth complete")

		if onDepth != nil {
			onDepth(depth)
		}
		e.report(SearchInfo{
			Depth: depth,
			Score: score,
			Move:  move,
			Nodes: res.Nodes,
			Time:  time.Since(startTime),
		})
	}

	e.store(hash, res)
	return res
}

func (e *Engine) report(info SearchInfo) {
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
}

// lookup returns a cached result for the position if one exists and its move
// is still legal there.
func (e *Engine) lookup(pos *board.Position, hash uint64, depth int) (SearchResult, bool) {
	if e.cfg.Cache == nil {
		return SearchResult{}, false
	}
	entry, found, err := e.cfg.Cache.Get(hash, depth)
	if err != nil {
		e.log.Warn().Err(err).Msg("cache lookup failed")
		return SearchResult{}, false
	}
	if !found {
		return SearchResult{}, false
	}
	move, err := board.ParseMove(entry.Move, pos)
	if err != nil {
		e.log.Debug().Str("move", entry.Move).Msg("ignoring stale cache entry")
		return SearchResult{}, false
	}
	return SearchResult{
		Move:   move,
		Score:  entry.Score,
		Depth:  entry.Depth,
		Nodes:  entry.Nodes,
		Cached: true,
	}, true
}

func (e *Engine) store(hash uint64, res SearchResult) {
	if e.cfg.Cache == nil || res.Move.IsNone() {
		return
	}
	err := e.cfg.Cache.Put(hash, res.Depth, storage.Entry{
		Move:  res.Move.String(),
		Score: res.Score,
		Depth: res.Depth,
		Nodes: res.Nodes,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("cache store failed")
	}
}

// Perft counts leaf nodes of the legal move tree (for debugging move
// generation). pos is restored before returning.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(move, undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString converts a white-positive score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score >= MateScore:
		return "White mates"
	case score <= -MateScore:
		return "Black mates"
	case score > 0:
		return "+" + strconv.Itoa(score)
	}
	return strconv.Itoa(score)
}
