package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [13][64]uint64 // indexed by Piece; row 0 (NoPiece) unused
	zobristEnPassant  [8]uint64      // One per file
	zobristCastling   [16]uint64     // All 16 flag combinations
	zobristSideToMove uint64         // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for piece := WhitePawn; piece <= BlackKing; piece++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[piece][sq] = rng.next()
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist hash of the position from scratch.
// Positions that differ in pieces, side to move, castle flags or en-passant
// file hash differently with overwhelming probability.
func (p *Position) Hash() uint64 {
	var hash uint64
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if piece := p.Board[rank][file]; piece != NoPiece {
				hash ^= zobristPiece[piece][NewSquare(file, rank)]
			}
		}
	}
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.Castle.bits()]
	if p.EnPassantFile != NoFile {
		hash ^= zobristEnPassant[p.EnPassantFile]
	}
	return hash
}
