package board

import "testing"

// TestMagicLookupsMatchRayWalker verifies the magic tables against the
// brute-force ray walker for every square and every subset of the
// relevant occupancy mask.
func TestMagicLookupsMatchRayWalker(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		for _, pt := range []PieceType{Bishop, Rook} {
			var mask Bitboard
			if pt == Bishop {
				mask = bishopMagics[sq].Mask
			} else {
				mask = rookMagics[sq].Mask
			}

			// Carry-rippler over all subsets of the mask
			occ := Empty
			for {
				want := slidingAttack(pt, sq, occ)
				got := AttacksBB(pt, sq, occ)
				if got != want {
					t.Fatalf("%v attacks from %v with occ %016x: got %016x, want %016x",
						pt, sq, uint64(occ), uint64(got), uint64(want))
				}

				if q := AttacksBB(Queen, sq, occ); q != slidingAttack(Bishop, sq, occ)|slidingAttack(Rook, sq, occ) {
					t.Fatalf("queen attacks from %v with occ %016x disagree with ray walker", sq, uint64(occ))
				}

				occ = (occ - mask) & mask
				if occ == 0 {
					break
				}
			}
		}
	}
}

func TestMaskExcludesEdges(t *testing.T) {
	// The relevant occupancy of a slider never includes the last square
	// of a ray: a blocker there cannot change the attack set.
	if rookMagics[A1].Mask.PopCount() != 12 {
		t.Errorf("rook mask on a1 has %d bits, want 12", rookMagics[A1].Mask.PopCount())
	}
	if rookMagics[E4].Mask.PopCount() != 10 {
		t.Errorf("rook mask on e4 has %d bits, want 10", rookMagics[E4].Mask.PopCount())
	}
	if bishopMagics[E4].Mask.PopCount() != 9 {
		t.Errorf("bishop mask on e4 has %d bits, want 9", bishopMagics[E4].Mask.PopCount())
	}
	if bishopMagics[A1].Mask&SquareBB(H8) != 0 {
		t.Error("bishop mask on a1 includes the h8 edge square")
	}
	if rookMagics[A1].Mask&(SquareBB(A8)|SquareBB(H1)) != 0 {
		t.Error("rook mask on a1 includes edge squares")
	}
}

func TestMagicShiftMatchesMask(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		if int(rookMagics[sq].Shift) != 64-rookMagics[sq].Mask.PopCount() {
			t.Errorf("rook shift on %v inconsistent with mask", sq)
		}
		if int(bishopMagics[sq].Shift) != 64-bishopMagics[sq].Mask.PopCount() {
			t.Errorf("bishop shift on %v inconsistent with mask", sq)
		}
	}
}

func TestCornerPseudoAttacks(t *testing.T) {
	// Knights in a corner reach exactly 2 squares, kings 3. No bit may
	// wrap across the A/H boundary.
	for _, sq := range []Square{A1, H1, A8, H8} {
		if n := KnightAttacks(sq).PopCount(); n != 2 {
			t.Errorf("knight attacks from %v: %d squares, want 2", sq, n)
		}
		if n := KingAttacks(sq).PopCount(); n != 3 {
			t.Errorf("king attacks from %v: %d squares, want 3", sq, n)
		}
	}

	if KnightAttacks(A1) != SquareBB(B3)|SquareBB(C2) {
		t.Errorf("knight attacks from a1: got\n%v", KnightAttacks(A1))
	}
	if KnightAttacks(H4)&FileA != 0 {
		t.Error("knight attacks from h4 wrapped onto the a file")
	}
	if KingAttacks(A4)&FileH != 0 {
		t.Error("king attacks from a4 wrapped onto the h file")
	}
}

func TestPawnAttacks(t *testing.T) {
	if PawnAttacks(White, E4) != SquareBB(D5)|SquareBB(F5) {
		t.Errorf("white pawn attacks from e4:\n%v", PawnAttacks(White, E4))
	}
	if PawnAttacks(Black, E4) != SquareBB(D3)|SquareBB(F3) {
		t.Errorf("black pawn attacks from e4:\n%v", PawnAttacks(Black, E4))
	}
	if PawnAttacks(White, A2) != SquareBB(B3) {
		t.Errorf("white pawn attacks from a2 must not wrap:\n%v", PawnAttacks(White, A2))
	}
	if PawnAttacks(Black, H7) != SquareBB(G6) {
		t.Errorf("black pawn attacks from h7 must not wrap:\n%v", PawnAttacks(Black, H7))
	}
}

func TestLineBB(t *testing.T) {
	// Symmetric, spans the full line, zero for unaligned pairs.
	for s1 := A1; s1 <= H8; s1++ {
		for s2 := A1; s2 <= H8; s2++ {
			if lineBB[s1][s2] != lineBB[s2][s1] {
				t.Fatalf("lineBB not symmetric for %v/%v", s1, s2)
			}
		}
	}

	if Line(A1, H8) != (SquareBB(A1) | SquareBB(B2) | SquareBB(C3) | SquareBB(D4) |
		SquareBB(E5) | SquareBB(F6) | SquareBB(G7) | SquareBB(H8)) {
		t.Errorf("line a1-h8:\n%v", Line(A1, H8))
	}
	if Line(E4, E7) != FileE {
		t.Errorf("line e4-e7 should be the e file:\n%v", Line(E4, E7))
	}
	if Line(A1, B3) != 0 {
		t.Errorf("line a1-b3 should be empty, got:\n%v", Line(A1, B3))
	}

	if !Aligned(A1, C3, B2) {
		t.Error("b2 should be aligned with a1-c3")
	}
	if Aligned(A1, C3, C2) {
		t.Error("c2 should not be aligned with a1-c3")
	}
}

func TestBetweenBB(t *testing.T) {
	// Inclusive of the second square, exclusive of the first.
	if Between(E1, E4) != SquareBB(E2)|SquareBB(E3)|SquareBB(E4) {
		t.Errorf("between e1-e4:\n%v", Between(E1, E4))
	}
	if Between(A1, D4) != SquareBB(B2)|SquareBB(C3)|SquareBB(D4) {
		t.Errorf("between a1-d4:\n%v", Between(A1, D4))
	}
	if Between(E4, E5) != SquareBB(E5) {
		t.Errorf("between adjacent squares should be only the target:\n%v", Between(E4, E5))
	}

	// Non-aligned pairs degenerate to the second square alone. A knight
	// check relies on this: the evasion target becomes exactly the
	// knight's square.
	if Between(E1, F3) != SquareBB(F3) {
		t.Errorf("between e1-f3 (knight jump) should be {f3}:\n%v", Between(E1, F3))
	}
	if Between(A1, C2) != SquareBB(C2) {
		t.Errorf("between a1-c2 should be {c2}:\n%v", Between(A1, C2))
	}
}

func TestAttackersTo(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3q4/8/5n2/3P4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	// Only the knight on f3 reaches e1; the queen on d5 is on neither a
	// ray nor a diagonal through e1, and the white pawn attacks c3/e3.
	if got := pos.AttackersTo(E1, pos.AllOccupied); got != SquareBB(F3) {
		t.Errorf("attackers of e1: got %016x, want only f3", uint64(got))
	}

	// The queen does attack d2 along the d file.
	if pos.AttackersByColor(D2, Black, pos.AllOccupied)&SquareBB(D5) == 0 {
		t.Error("queen on d5 should attack d2")
	}
	if !pos.IsSquareAttacked(E1, Black) {
		t.Error("e1 should be attacked by black")
	}
}

func TestBlockersAndPinners(t *testing.T) {
	// White rook e4 shields the white king from the black rook e8; the
	// black knight e6 shields the same ray for nobody (two blockers on
	// one ray pin neither).
	pos, err := ParseFEN("4r1k1/8/8/8/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if pos.BlockersForKing[White] != SquareBB(E4) {
		t.Errorf("white king blockers: got %016x, want e4", uint64(pos.BlockersForKing[White]))
	}
	if pos.Pinners[Black]&SquareBB(E8) == 0 {
		t.Error("black rook on e8 should pin the rook on e4")
	}

	// Add a second blocker on the ray: no pin remains.
	pos2, err := ParseFEN("4r1k1/8/4n3/8/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos2.BlockersForKing[White] != 0 {
		t.Errorf("two blockers on the ray must pin neither, got %016x", uint64(pos2.BlockersForKing[White]))
	}
}
