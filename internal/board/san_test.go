package board

import "testing"

func TestToSAN(t *testing.T) {
	pos := NewPosition()

	cases := []struct {
		move Move
		want string
	}{
		{NewMove(E2, E4), "e4"},
		{NewMove(G1, F3), "Nf3"},
	}
	for _, tc := range cases {
		if got := tc.move.ToSAN(pos); got != tc.want {
			t.Errorf("ToSAN(%v) = %q, want %q", tc.move, got, tc.want)
		}
	}

	// Castling and checks
	pos2, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := NewCastling(E1, H1).ToSAN(pos2); got != "O-O" {
		t.Errorf("kingside castle = %q, want O-O", got)
	}
	if got := NewMove(A1, A8).ToSAN(pos2); got != "Rxa8+" {
		t.Errorf("rook capture with check = %q, want Rxa8+", got)
	}
}

func TestSANDisambiguation(t *testing.T) {
	// Two knights can reach d2; the origin file disambiguates.
	pos, err := ParseFEN("4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if got := NewMove(B1, D2).ToSAN(pos); got != "Nbd2" {
		t.Errorf("got %q, want Nbd2", got)
	}
	if got := NewMove(F3, D2).ToSAN(pos); got != "Nfd2" {
		t.Errorf("got %q, want Nfd2", got)
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	pos := NewPosition()

	for _, m := range pos.GenerateLegalMoves().Slice() {
		san := m.ToSAN(pos)
		parsed, err := ParseSAN(san, pos)
		if err != nil {
			t.Fatalf("ParseSAN(%q): %v", san, err)
		}
		if parsed != m {
			t.Errorf("ParseSAN(%q) = %v, want %v", san, parsed, m)
		}
	}
}

func TestParseSANCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m, err := ParseSAN("O-O-O", pos)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCastling() || m.From() != E8 || m.To() != A8 {
		t.Errorf("O-O-O parsed as %v", m)
	}
}
