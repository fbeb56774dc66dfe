package board

import "testing"

func TestMakeUnmakeRestoresState(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		before := *pos

		for _, m := range pos.GenerateLegalMoves().Slice() {
			undo := pos.MakeMove(m)
			pos.UnmakeMove(m, undo)

			if *pos != before {
				t.Fatalf("make/unmake of %v did not restore the position for %s", m, fen)
			}
		}
	}
}

func TestIncrementalHashMatchesRecomputation(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range pos.GenerateLegalMoves().Slice() {
		undo := pos.MakeMove(m)
		if pos.Hash != pos.ComputeHash() {
			t.Errorf("after %v: incremental hash %016x != recomputed %016x",
				m, pos.Hash, pos.ComputeHash())
		}
		pos.UnmakeMove(m, undo)
	}
}

func TestMakeMoveCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m := NewCastling(E1, H1)
	pos.MakeMove(m)

	if pos.PieceAt(G1) != WhiteKing {
		t.Errorf("king should stand on g1, found %v", pos.PieceAt(G1))
	}
	if pos.PieceAt(F1) != WhiteRook {
		t.Errorf("rook should stand on f1, found %v", pos.PieceAt(F1))
	}
	if !pos.IsEmpty(E1) || !pos.IsEmpty(H1) {
		t.Error("e1 and h1 should be empty after castling")
	}
	if pos.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Error("white castling rights should be gone")
	}
	if pos.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) == 0 {
		t.Error("black castling rights should survive")
	}
	if pos.KingSquare[White] != G1 {
		t.Errorf("cached king square = %v, want g1", pos.KingSquare[White])
	}
}

func TestMakeMoveQueensideCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m := NewCastling(E8, A8)
	pos.MakeMove(m)

	if pos.PieceAt(C8) != BlackKing || pos.PieceAt(D8) != BlackRook {
		t.Error("black queenside castling should leave Kc8/Rd8")
	}
	if !pos.IsEmpty(E8) || !pos.IsEmpty(A8) || !pos.IsEmpty(B8) {
		t.Error("e8, a8 and b8 should be empty after O-O-O")
	}
}

func TestMakeMoveEnPassant(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatal(err)
	}

	m := NewEnPassant(E5, F6)
	pos.MakeMove(m)

	if pos.PieceAt(F6) != WhitePawn {
		t.Error("capturing pawn should stand on f6")
	}
	if !pos.IsEmpty(F5) {
		t.Error("captured pawn should be gone from f5")
	}
	if !pos.IsEmpty(E5) {
		t.Error("e5 should be empty")
	}
}

func TestMakeMoveSetsEnPassantSquare(t *testing.T) {
	pos := NewPosition()

	pos.MakeMove(NewMove(E2, E4))
	if pos.EnPassant != E3 {
		t.Errorf("ep square = %v, want e3", pos.EnPassant)
	}

	pos.MakeMove(NewMove(G8, F6))
	if pos.EnPassant != NoSquare {
		t.Errorf("ep square should be cleared, got %v", pos.EnPassant)
	}
}

func TestMakeMovePromotion(t *testing.T) {
	pos, err := ParseFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	if err != nil {
		t.Fatal(err)
	}

	m := NewPromotion(D7, C8, Queen) // d7 pawn takes the bishop and promotes
	undo := pos.MakeMove(m)

	if pos.PieceAt(C8) != WhiteQueen {
		t.Errorf("c8 should hold the promoted queen, found %v", pos.PieceAt(C8))
	}
	if pos.Pieces[White][Pawn]&SquareBB(C8) != 0 {
		t.Error("promoted pawn still present in the pawn bitboard")
	}
	if undo.CapturedPiece != BlackBishop {
		t.Errorf("captured piece = %v, want the black bishop", undo.CapturedPiece)
	}
}

func TestRookCaptureRemovesCastlingRight(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	// Rook takes rook on a8: black loses queenside castling.
	pos.MakeMove(NewMove(A1, A8))

	if pos.CastlingRights&BlackQueenSideCastle != 0 {
		t.Error("black queenside right should be gone after Rxa8")
	}
	if pos.CastlingRights&WhiteQueenSideCastle != 0 {
		t.Error("white queenside right should be gone after the a1 rook moved")
	}
	if pos.CastlingRights&(WhiteKingSideCastle|BlackKingSideCastle) !=
		WhiteKingSideCastle|BlackKingSideCastle {
		t.Error("kingside rights should survive")
	}
}
