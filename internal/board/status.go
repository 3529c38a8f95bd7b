package board

// Status is the terminal state of a position.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// GameStatus describes whether the game is over and who won.
// Winner is NoColor unless Status is Checkmate.
type GameStatus struct {
	Status Status
	Winner Color
}

func (gs GameStatus) String() string {
	if gs.Status == Checkmate {
		return gs.Status.String() + ", " + gs.Winner.String() + " wins"
	}
	return gs.Status.String()
}

// GameStatus reports checkmate or stalemate when the side to move has no
// legal moves. Having no moves is a game result, not an error.
func (p *Position) GameStatus() GameStatus {
	if p.HasLegalMoves() {
		return GameStatus{Status: Ongoing, Winner: NoColor}
	}
	if p.InCheck() {
		return GameStatus{Status: Checkmate, Winner: p.SideToMove.Other()}
	}
	return GameStatus{Status: Stalemate, Winner: NoColor}
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
