package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
)

// State is the lifecycle stage of a Coordinator.
type State int32

const (
	Idle State = iota
	Searching
	ResultReady
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case ResultReady:
		return "result ready"
	}
	return "idle"
}

// Progress is an advisory snapshot of the running search. Fields are read
// without locking and may be slightly stale.
type Progress struct {
	Nodes          uint64
	DepthCompleted int
	Searching      bool
}

type searchFunc func(pos *board.Position, maxDepth int, nodes *atomic.Uint64, onDepth func(int)) SearchResult

// Coordinator runs at most one background search at a time on behalf of a
// caller that owns the live position and polls for the result.
//
// Idle -> Searching on RequestSearch, Searching -> ResultReady when the
// search finishes, ResultReady -> Idle when PollResult hands the result over.
type Coordinator struct {
	log    zerolog.Logger
	search searchFunc

	mu     sync.Mutex
	state  State
	result SearchResult

	nodes     atomic.Uint64
	depth     atomic.Int32
	searching atomic.Bool
}

// NewCoordinator creates a coordinator that searches with e.
// e.OnInfo, if set, is called from the search goroutine.
func NewCoordinator(e *Engine) *Coordinator {
	return &Coordinator{
		log:    e.cfg.Logger.With().Str("component", "coordinator").Logger(),
		search: e.search,
	}
}

// RequestSearch starts a search of a copy of pos to maxDepth plies and
// returns true. If a search is running or its result has not been collected
// yet, it does nothing and returns false. maxDepth below 1 is treated as 1.
func (c *Coordinator) RequestSearch(pos *board.Position, maxDepth int) bool {
	c.mu.Lock()
	if c.state != Idle {
		state := c.state
		c.mu.Unlock()
		c.log.Debug().Stringer("state", state).Msg("search request ignored")
		return false
	}
	c.state = Searching
	c.nodes.Store(0)
	c.depth.Store(0)
	c.searching.Store(true)
	c.mu.Unlock()

	if maxDepth < 1 {
		maxDepth = 1
	}
	snapshot := pos.Copy()
	id := uuid.NewString()

	go c.run(id, snapshot, maxDepth)
	return true
}

func (c *Coordinator) run(id string, pos *board.Position, maxDepth int) {
	log := c.log.With().Str("search", id).Logger()
	start := time.Now()
	log.Info().Int("max_depth", maxDepth).Str("fen", pos.ToFEN()).Msg("search started")

	res := c.execute(log, pos, maxDepth)
	res.ID = id

	if res.Err == nil {
		log.Info().
			Str("move", res.Move.String()).
			Int("score", res.Score).
			Int("depth", res.Depth).
			Uint64("nodes", res.Nodes).
			Bool("cached", res.Cached).
			Dur("elapsed", time.Since(start)).
			Msg("search finished")
	}

	c.mu.Lock()
	c.result = res
	c.state = ResultReady
	c.searching.Store(false)
	c.mu.Unlock()
}

// execute runs the search, turning a panic into SearchResult.Err. Only the
// private snapshot is lost; the caller's position was never shared.
func (c *Coordinator) execute(log zerolog.Logger, pos *board.Position, maxDepth int) (res SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if ok {
				err = fmt.Errorf("search aborted: %w", err)
			} else {
				err = fmt.Errorf("search aborted: %v", r)
			}
			log.Error().Err(err).Msg("search failed")
			res = SearchResult{Move: board.NoMove, Err: err}
		}
	}()

	return c.search(pos, maxDepth, &c.nodes, func(depth int) {
		c.depth.Store(int32(depth))
	})
}

// PollResult returns the finished search result, if any, and returns the
// coordinator to Idle. It never blocks on the search.
func (c *Coordinator) PollResult() (SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != ResultReady {
		return SearchResult{}, false
	}
	res := c.result
	c.result = SearchResult{}
	c.state = Idle
	return res, true
}

// PollProgress returns advisory progress counters.
func (c *Coordinator) PollProgress() Progress {
	return Progress{
		Nodes:          c.nodes.Load(),
		DepthCompleted: int(c.depth.Load()),
		Searching:      c.searching.Load(),
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
