package board

import "testing"

// perft counts the leaf nodes of the legal move tree at the given depth.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for _, m := range moves.Slice() {
		undo := p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// None of these trees contain a promotion at the tested depths, so queen-only
// promotion gives the standard counts.
func TestPerft(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		counts []int64
	}{
		{"start", StartFEN, []int64{20, 400, 8902, 197281}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []int64{48, 2039, 97862}},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", []int64{14, 191, 2812, 43238}},
		// The e4 pawn may not take on d3: the a4 king would be exposed to h4.
		{"ep-pin", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []int64{6, 94}},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
		}
		for i, want := range tc.counts {
			depth := i + 1
			if testing.Short() && depth > 3 {
				continue
			}
			t.Run(tc.name, func(t *testing.T) {
				before := *pos
				if got := perft(pos, depth); got != want {
					t.Errorf("perft(%d) = %d, want %d", depth, got, want)
				}
				if *pos != before {
					t.Errorf("perft(%d) left the position modified", depth)
				}
			})
		}
	}
}

func TestEnPassantPinnedCapture(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range pos.GenerateMoves().Slice() {
		if m.EnPassant {
			t.Errorf("en passant %v should be illegal (horizontal pin)", m)
		}
	}
	if pos.IsLegalMove(E4, D3) {
		t.Error("IsLegalMove(e4, d3) = true, want false")
	}
}
