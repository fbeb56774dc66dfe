package board

// Polyglot-style Zobrist keys, distinct from the internal keys. They are
// drawn from a fixed-seed PRNG rather than taken from the published
// Polyglot key table, so these hashes do not match the keys of books
// written by other Polyglot tools.
var (
	polyglotPieces     [12][64]uint64 // [piece_kind][square]
	polyglotCastling   [4]uint64      // [KQkq]
	polyglotEnPassant  [8]uint64      // [file]
	polyglotSideToMove uint64
)

func init() {
	initPolyglotKeys()
}

func initPolyglotKeys() {
	rng := newPRNG(0x37B4A4B3F0D1C0D0)

	// 12 piece kinds * 64 squares, then castling, en passant, side to move
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = rng.next()
		}
	}

	for i := 0; i < 4; i++ {
		polyglotCastling[i] = rng.next()
	}

	for i := 0; i < 8; i++ {
		polyglotEnPassant[i] = rng.next()
	}

	polyglotSideToMove = rng.next()
}

// PolyglotHash computes the Polyglot hash key of the position for
// opening-book lookup.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	// Piece key ordering: bp, bN, bB, bR, bQ, bK, wp, wN, wB, wR, wQ, wK
	pieceKindMap := [2][6]int{
		{6, 7, 8, 9, 10, 11}, // White pieces
		{0, 1, 2, 3, 4, 5},   // Black pieces
	}

	for color := White; color <= Black; color++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[color][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= polyglotPieces[pieceKindMap[color][pt]][sq]
			}
		}
	}

	if p.CastlingRights&WhiteKingSideCastle != 0 {
		hash ^= polyglotCastling[0]
	}
	if p.CastlingRights&WhiteQueenSideCastle != 0 {
		hash ^= polyglotCastling[1]
	}
	if p.CastlingRights&BlackKingSideCastle != 0 {
		hash ^= polyglotCastling[2]
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 {
		hash ^= polyglotCastling[3]
	}

	// Polyglot hashes the en passant file only when a pawn of the side
	// to move actually attacks the square.
	if p.EnPassant != NoSquare {
		us := p.SideToMove
		if pawnAttacks[us.Other()][p.EnPassant]&p.Pieces[us][Pawn] != 0 {
			hash ^= polyglotEnPassant[p.EnPassant.File()]
		}
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}

	return hash
}
