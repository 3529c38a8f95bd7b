package board

import "testing"

func TestPawnPushSquareNotAttacked(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if !pos.PawnCanMove(E2, E3) || !pos.PawnCanMove(E2, E4) {
		t.Error("e2 pawn should be able to push to e3 and e4")
	}
	if pos.PieceAttacks(E2, E3) || pos.SquareAttacked(E3, White) {
		t.Error("pawn push square reported as attacked")
	}
	if !pos.PieceAttacks(E2, D3) || !pos.PieceAttacks(E2, F3) {
		t.Error("pawn should attack both forward diagonals")
	}
	if pos.PawnCanMove(E2, D3) {
		t.Error("pawn cannot move diagonally onto an empty square")
	}
}

// A king may step onto a pawn's push square.
func TestKingBesidePawnPush(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/3k4/8/4P3/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.SquareAttacked(E3, White) {
		t.Error("e3 reported as attacked by the e2 pawn")
	}
	if !pos.IsLegalMove(D4, E3) {
		t.Error("king should be able to step onto e3")
	}
	if pos.IsLegalMove(D4, D3) {
		t.Error("d3 is attacked by the e2 pawn")
	}
}

func TestPathClear(t *testing.T) {
	pos := NewPosition()
	tests := []struct {
		from, to Square
		want     bool
	}{
		{A1, A8, false},
		{A2, A7, true},
		{C1, H6, false},
		{B3, F7, true},
		{B3, G8, false},
		{A3, H3, true},
		{E4, E5, true},
		{B1, C3, false}, // not aligned
		{E4, E4, false},
	}
	for _, tc := range tests {
		if got := pos.PathClear(tc.from, tc.to); got != tc.want {
			t.Errorf("PathClear(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPieceAttacks(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3q4/8/1N6/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		from, to Square
		want     bool
	}{
		{B3, D4, true},
		{B3, C5, true},
		{B3, B5, false},
		{A1, A8, true},
		{A1, E1, true},
		{A1, F1, false}, // king in the way
		{D5, B3, true},
		{D5, A2, false}, // knight in the way
		{D5, H1, true},
		{E1, F2, true},
		{E1, G1, false},
		{E4, E5, false}, // empty square
	}
	for _, tc := range tests {
		if got := pos.PieceAttacks(tc.from, tc.to); got != tc.want {
			t.Errorf("PieceAttacks(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}

	if pos.KingInCheck(White) {
		t.Error("KingInCheck(White) = true, want false")
	}
}

func TestSquareOffset(t *testing.T) {
	tests := []struct {
		sq     Square
		df, dr int
		want   Square
	}{
		{E2, 0, 1, E3},
		{E7, 0, -2, E5},
		{A1, -1, 0, NoSquare},
		{H8, 0, 1, NoSquare},
		{B1, 1, 2, C3},
		{NoSquare, 0, 0, NoSquare},
	}
	for _, tc := range tests {
		if got := tc.sq.Offset(tc.df, tc.dr); got != tc.want {
			t.Errorf("%s.Offset(%d, %d) = %s, want %s", tc.sq, tc.df, tc.dr, got, tc.want)
		}
	}
}

func TestParseSquare(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got, err := ParseSquare(sq.String())
		if err != nil || got != sq {
			t.Errorf("ParseSquare(%q) = %s, %v", sq.String(), got, err)
		}
	}
	for _, s := range []string{"", "e", "i1", "a9", "e44", "E4"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", s)
		}
	}
}
