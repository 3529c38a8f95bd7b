package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// playedMove is a history entry kept so moves can be taken back.
type playedMove struct {
	move board.Move
	undo board.UndoRecord
	san  string
}

// Game holds the live position. It is owned by the control loop; the engine
// only ever sees copies through the coordinator.
type Game struct {
	position    *board.Position
	engine      *engine.Engine
	coord       *engine.Coordinator
	playerColor board.Color
	depth       int

	startSide  board.Color
	history    []playedMove
	aiThinking bool
	gameOver   bool
	gameResult string
	lastDepth  int

	out io.Writer
	log zerolog.Logger
}

// NewGame creates a game from pos with the human playing playerColor.
func NewGame(eng *engine.Engine, pos *board.Position, playerColor board.Color, depth int, out io.Writer, log zerolog.Logger) *Game {
	return &Game{
		position:    pos,
		engine:      eng,
		coord:       engine.NewCoordinator(eng),
		playerColor: playerColor,
		startSide:   pos.SideToMove,
		depth:       depth,
		out:         out,
		log:         log,
	}
}

func (g *Game) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}

// Start prints the board and lets the engine move if it has the first turn.
func (g *Game) Start() {
	g.printf("%s", g.position)
	g.checkGameEnd()
	if !g.gameOver && g.position.SideToMove != g.playerColor {
		g.startAIThinking()
	}
}

// HandleInput processes one line typed by the player. It returns false when
// the player quits.
func (g *Game) HandleInput(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case "quit", "exit":
		return false
	case "board":
		g.printf("%s", g.position)
	case "fen":
		g.printf("%s\n", g.position.ToFEN())
	case "moves":
		var sans []string
		for _, m := range g.position.GenerateMoves().Slice() {
			sans = append(sans, m.ToSAN(g.position))
		}
		g.printf("%s\n", strings.Join(sans, " "))
	case "history":
		g.printf("%s\n", g.SANHistory())
	case "undo":
		g.takeBack()
	case "help":
		g.printf("enter moves as e2e4 or Nf3; commands: board fen moves history undo quit\n")
	default:
		g.playerMove(line)
	}
	return true
}

// playerMove validates and plays a move typed by the player.
func (g *Game) playerMove(s string) {
	switch {
	case g.gameOver:
		g.printf("game over: %s\n", g.gameResult)
		return
	case g.aiThinking || g.position.SideToMove != g.playerColor:
		g.printf("not your turn\n")
		return
	}

	m, err := board.ParseMove(s, g.position)
	if err != nil {
		san, sanErr := board.ParseSAN(s, g.position)
		if sanErr != nil {
			g.printf("%v\n", err)
			return
		}
		m = san
	}
	if err := g.makeMove(m); err != nil {
		g.printf("%v\n", err)
		return
	}
	if !g.gameOver {
		g.startAIThinking()
	}
}

// makeMove applies a legal move to the live position.
func (g *Game) makeMove(m board.Move) error {
	if !g.position.IsLegal(m) {
		return fmt.Errorf("%w: %s", board.ErrInvalidMove, m)
	}
	mover := g.position.SideToMove
	san := m.ToSAN(g.position)
	undo := g.position.MakeMove(m)
	g.history = append(g.history, playedMove{move: m, undo: undo, san: san})

	g.printf("%s plays %s\n", mover, san)
	g.checkGameEnd()
	return nil
}

// takeBack undoes moves until it is the player's turn again. When the history
// runs out on the engine's turn, the engine is asked to move again.
func (g *Game) takeBack() {
	if g.aiThinking {
		g.printf("wait for the engine to move\n")
		return
	}
	if len(g.history) == 0 {
		g.printf("nothing to undo\n")
		return
	}
	for len(g.history) > 0 {
		last := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]
		g.position.UnmakeMove(last.move, last.undo)
		if g.position.SideToMove == g.playerColor {
			break
		}
	}
	g.gameOver, g.gameResult = false, ""
	g.printf("%s", g.position)
	if g.position.SideToMove != g.playerColor {
		g.startAIThinking()
	}
}

// checkGameEnd checks if the game is over.
func (g *Game) checkGameEnd() {
	status := g.position.GameStatus()
	switch status.Status {
	case board.Checkmate:
		g.gameOver = true
		g.gameResult = fmt.Sprintf("%s wins by checkmate", status.Winner)
	case board.Stalemate:
		g.gameOver = true
		g.gameResult = "draw by stalemate"
	default:
		if g.position.InCheck() {
			g.printf("check\n")
		}
		return
	}
	g.printf("%s\n", g.gameResult)
}

// startAIThinking hands a copy of the position to the coordinator.
func (g *Game) startAIThinking() {
	if g.position.SideToMove == g.playerColor {
		g.log.Error().Stringer("side", g.position.SideToMove).Msg("engine asked to move on the player's turn")
		return
	}
	if !g.coord.RequestSearch(g.position, g.depth) {
		g.log.Warn().Msg("search already in progress")
		return
	}
	g.aiThinking = true
	g.lastDepth = 0
}

// CheckAIMove polls the coordinator and plays the engine's move when ready.
func (g *Game) CheckAIMove() {
	if !g.aiThinking {
		return
	}

	if p := g.coord.PollProgress(); p.DepthCompleted > g.lastDepth {
		g.lastDepth = p.DepthCompleted
		g.log.Debug().Int("depth", p.DepthCompleted).Uint64("nodes", p.Nodes).Msg("thinking")
	}

	res, ok := g.coord.PollResult()
	if !ok {
		return
	}
	g.aiThinking = false

	var ie *board.InvariantError
	switch {
	case res.Err != nil:
		g.log.Error().Err(res.Err).Str("search", res.ID).Bool("invariant", errors.As(res.Err, &ie)).Msg("engine failed")
		g.gameOver, g.gameResult = true, "engine error"
		g.printf("%s\n", g.gameResult)
		return
	case res.Move.IsNone():
		g.checkGameEnd()
		return
	}

	g.log.Info().
		Str("search", res.ID).
		Str("move", res.Move.String()).
		Str("score", engine.ScoreToString(res.Score)).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Msg("engine move")
	if err := g.makeMove(res.Move); err != nil {
		g.log.Error().Err(err).Msg("engine returned an illegal move")
	}
}

// SANHistory returns the moves played so far in SAN.
func (g *Game) SANHistory() string {
	var sb strings.Builder
	number, side := 1, g.startSide
	for i, pm := range g.history {
		switch {
		case side == board.White:
			fmt.Fprintf(&sb, "%d. ", number)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", number)
		}
		sb.WriteString(pm.san)
		sb.WriteByte(' ')
		if side == board.Black {
			number++
		}
		side = side.Other()
	}
	return strings.TrimSpace(sb.String())
}

// AIThinking reports whether an engine move is pending.
func (g *Game) AIThinking() bool {
	return g.aiThinking
}

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool {
	return g.gameOver
}
