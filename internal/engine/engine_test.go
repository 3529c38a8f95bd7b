package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.InfoLevel)
	return cfg
}

func TestSearchIterativeDeepening(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	eng := NewEngine(testConfig(t))

	var depths []int
	eng.OnInfo = func(info SearchInfo) {
		depths = append(depths, info.Depth)
		t.Logf("depth %d: %s score %d nodes %d", info.Depth, info.Move, info.Score, info.Nodes)
	}

	res := eng.Search(pos, 3)
	if diff := cmp.Diff([]int{1, 2, 3}, depths); diff != "" {
		t.Errorf("reported depths (-want +got):\n%s", diff)
	}
	if res.Depth != 3 {
		t.Errorf("Depth = %d, want 3", res.Depth)
	}

	move, score := FindBestMove(pos, 3)
	if res.Move != move || res.Score != score {
		t.Errorf("Search = %s/%d, FindBestMove(3) = %s/%d", res.Move, res.Score, move, score)
	}
	if res.Nodes == 0 {
		t.Error("Nodes = 0")
	}
}

func TestSearchDefaultDepth(t *testing.T) {
	eng := NewEngine(testConfig(t))
	eng.SetDifficulty(Easy)
	if eng.MaxDepth() != 2 {
		t.Fatalf("MaxDepth() = %d, want 2", eng.MaxDepth())
	}
	res := eng.Search(board.NewPosition(), 0)
	if res.Depth != 2 {
		t.Errorf("Depth = %d, want 2", res.Depth)
	}
	if res.Move.IsNone() {
		t.Error("Search returned NoMove for starting position")
	}
}

func TestSearchCache(t *testing.T) {
	cache, err := storage.NewCache(16)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	cfg := testConfig(t)
	cfg.Cache = cache
	eng := NewEngine(cfg)
	pos := board.NewPosition()

	first := eng.Search(pos, 2)
	if first.Cached {
		t.Fatal("first search reported a cache hit")
	}
	second := eng.Search(pos, 2)
	if !second.Cached {
		t.Fatal("second search missed the cache")
	}
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(SearchResult{}, "Cached")); diff != "" {
		t.Errorf("cached result differs (-want +got):\n%s", diff)
	}

	// A different depth is a different entry.
	if eng.Search(pos, 1).Cached {
		t.Error("depth 1 hit the depth 2 entry")
	}

	st := cache.Stats()
	if st.Hits != 1 || st.Writes != 2 {
		t.Errorf("cache stats = %+v, want 1 hit and 2 writes", st)
	}
}

func TestSearchIgnoresStaleCacheEntry(t *testing.T) {
	cache, err := storage.NewCache(16)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	pos := board.NewPosition()
	if err := cache.Put(pos.Hash(), 1, storage.Entry{Move: "e2e5", Score: 99, Depth: 1}); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Cache = cache
	res := NewEngine(cfg).Search(pos, 1)
	if res.Cached {
		t.Error("illegal cached move was used")
	}
	if res.Move.String() != "b1a3" || res.Score != 0 {
		t.Errorf("Search = %s/%d, want b1a3/0", res.Move, res.Score)
	}
}

func TestEnginePerft(t *testing.T) {
	eng := NewEngine(testConfig(t))
	pos := board.NewPosition()
	before := *pos

	want := []uint64{1, 20, 400, 8902}
	for depth, n := range want {
		if got := eng.Perft(pos, depth); got != n {
			t.Errorf("Perft(%d) = %d, want %d", depth, got, n)
		}
	}
	if *pos != before {
		t.Error("Perft modified the position")
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		in    string
		want  Difficulty
		depth int
	}{
		{"easy", Easy, 2},
		{"medium", Medium, 3},
		{"hard", Hard, 4},
	}
	for _, tc := range tests {
		d, err := ParseDifficulty(tc.in)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", tc.in, err)
		}
		if d != tc.want || DifficultySettings[d] != tc.depth {
			t.Errorf("ParseDifficulty(%q) = %v (depth %d), want %v (depth %d)", tc.in, d, DifficultySettings[d], tc.want, tc.depth)
		}
	}
	if _, err := ParseDifficulty("grandmaster"); err == nil {
		t.Error("ParseDifficulty accepted an unknown level")
	}
}

func TestScoreToString(t *testing.T) {
	tests := map[int]string{
		0:          "0",
		3:          "+3",
		-4:         "-4",
		MateScore:  "White mates",
		-MateScore: "Black mates",
	}
	for score, want := range tests {
		if got := ScoreToString(score); got != want {
			t.Errorf("ScoreToString(%d) = %q, want %q", score, got, want)
		}
	}
}
