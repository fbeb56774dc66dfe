package board

// Magic bitboard implementation for sliding piece attacks ("fancy" magics).
// The factors are searched at startup rather than baked in; any verified
// factor set is equally correct, and the fixed per-rank seeds make the
// search deterministic and fast.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Factor uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right (64 - popcount(Mask))
	Offset uint32   // Start of this square's slice of the shared table
}

// index maps an occupancy to this square's slot in the attack table.
func (m *Magic) index(occupied Bitboard) uint32 {
	return uint32(((uint64(occupied) & uint64(m.Mask)) * m.Factor) >> m.Shift)
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	// Shared attack tables; each square owns a contiguous slice,
	// consecutive squares packed back-to-back.
	bishopTable [0x1480]Bitboard  // 5248 entries
	rookTable   [0x19000]Bitboard // 102400 entries
)

// magicSeeds holds one PRNG seed per rank, chosen so the factor search
// terminates in few attempts.
var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

var (
	rookDirections   = [4]Direction{North, South, East, West}
	bishopDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
)

// safeDestination returns the bitboard of the square one step away, or
// empty if the step leaves the board. The Chebyshev distance check
// rejects horizontal wrap-around.
func safeDestination(s Square, d Direction) Bitboard {
	to := int(s) + int(d)
	if to < 0 || to >= 64 || Distance(s, Square(to)) > 2 {
		return Empty
	}
	return SquareBB(Square(to))
}

// slidingAttack computes rook or bishop attacks by ray walking. Used
// during initialization and as the reference in tests.
func slidingAttack(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	attacks := Empty

	dirs := &rookDirections
	if pt == Bishop {
		dirs = &bishopDirections
	}

	for _, d := range dirs {
		s := sq
		for safeDestination(s, d) != 0 {
			s = s.Add(d)
			attacks |= SquareBB(s)
			if occupied.IsSet(s) {
				break
			}
		}
	}

	return attacks
}

func initMagics() {
	findMagics(Bishop, bishopTable[:], &bishopMagics)
	findMagics(Rook, rookTable[:], &rookMagics)
}

// findMagics computes masks, offsets and attack tables for one slider
// kind, searching a verified magic factor for every square.
func findMagics(pt PieceType, table []Bitboard, magics *[64]Magic) {
	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0

	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		// Board edges are not part of the relevant occupancy: a blocker
		// on the last square of a ray cannot change the attack set.
		edges := ((Rank1 | Rank8) &^ RankMask[sq.Rank()]) |
			((FileA | FileH) &^ FileMask[sq.File()])

		m := &magics[sq]
		m.Mask = slidingAttack(pt, sq, Empty) &^ edges
		m.Shift = uint8(64 - popCountTable(m.Mask))
		m.Offset = offset

		// Carry-rippler enumeration of every subset of the mask, with
		// the reference attack for each subset.
		b := Empty
		size := 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(pt, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}

		attacks := table[offset : offset+uint32(size)]
		rng := newPRNG(magicSeeds[sq.Rank()])

		// Draw sparse candidates until one maps every occupancy subset
		// to a consistent slot. The epoch counter marks slots written
		// during the current attempt, so failed attempts need no reset.
		for i := 0; i < size; {
			m.Factor = 0
			for Bitboard(m.Factor*uint64(m.Mask)>>56).PopCount() < 6 {
				m.Factor = rng.sparse()
			}

			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					attacks[idx] = reference[i]
				} else if attacks[idx] != reference[i] {
					break
				}
			}
		}

		offset += uint32(size)
	}
}

// getBishopAttacks returns bishop attacks using magic bitboards.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return bishopTable[m.Offset+m.index(occupied)]
}

// getRookAttacks returns rook attacks using magic bitboards.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return rookTable[m.Offset+m.index(occupied)]
}
