// Command chessplay plays chess against the engine in a terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	depth      = flag.Int("depth", 0, "search depth in plies (overrides -difficulty)")
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
	color      = flag.String("color", "white", "color you play (white or black)")
	fen        = flag.String("fen", board.StartFEN, "starting position")
	cacheMB    = flag.Int("cache", 16, "analysis cache size in MB (0 disables)")
	logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

const pollInterval = 20 * time.Millisecond

func main() {
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(log); err != nil {
		log.Error().Err(err).Msg("chessplay")
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}
	if err := pos.Validate(); err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}

	var player board.Color
	switch *color {
	case "white", "w":
		player = board.White
	case "black", "b":
		player = board.Black
	default:
		return fmt.Errorf("unknown color %q", *color)
	}

	cfg := engine.DefaultConfig()
	cfg.Logger = log
	if *cacheMB > 0 {
		cache, err := storage.NewCache(*cacheMB)
		if err != nil {
			return err
		}
		defer cache.Close()
		cfg.Cache = cache
	}

	eng := engine.NewEngine(cfg)
	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		return err
	}
	eng.SetDifficulty(d)
	searchDepth := eng.MaxDepth()
	if *depth > 0 {
		searchDepth = *depth
	}
	log.Info().Stringer("difficulty", d).Int("depth", searchDepth).Stringer("player", player).Msg("new game")

	game := NewGame(eng, pos, player, searchDepth, os.Stdout, log)
	game.Start()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case line, ok := <-lines:
			if !ok || !game.HandleInput(line) {
				return nil
			}
		case <-ticker.C:
			game.CheckAIMove()
		}
	}
}
