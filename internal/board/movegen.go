package board

import "fmt"

// GenType selects which subset of moves to generate.
type GenType uint8

const (
	// GenCaptures emits moves onto enemy-held squares plus all queen
	// promotions, capturing or not.
	GenCaptures GenType = iota
	// GenQuiets emits moves onto empty squares minus queen promotions,
	// plus under-promotions.
	GenQuiets
	// GenEvasions emits moves that could resolve a check. Only valid
	// while the side to move is in check.
	GenEvasions
	// GenNonEvasions is the union of captures and quiets. Only valid
	// while not in check.
	GenNonEvasions
	// GenLegal emits exactly the legal moves.
	GenLegal
)

// String returns the generation kind name.
func (g GenType) String() string {
	switch g {
	case GenCaptures:
		return "captures"
	case GenQuiets:
		return "quiets"
	case GenEvasions:
		return "evasions"
	case GenNonEvasions:
		return "non-evasions"
	case GenLegal:
		return "legal"
	}
	return "unknown"
}

// Generate appends the moves of the given kind to the caller-owned list.
// For the pseudo-legal kinds, GenEvasions must be requested exactly when
// the side to move is in check; a mismatch is a programmer error and
// panics.
func (p *Position) Generate(kind GenType, ml *MoveList) {
	if kind == GenLegal {
		p.generateLegal(ml)
		return
	}

	if (kind == GenEvasions) != p.InCheck() {
		panic(fmt.Sprintf("board: %v generation requested with checkers=%016x", kind, uint64(p.Checkers)))
	}

	p.generateAll(kind, ml)
}

// GenerateLegalMoves generates all legal moves into a fresh list.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateLegal(ml)
	return ml
}

// generateAll generates pseudo-legal moves of one kind for the side to
// move. The target mask narrows destinations according to the kind.
func (p *Position) generateAll(kind GenType, ml *MoveList) {
	us := p.SideToMove
	ksq := p.KingSquare[us]
	var target Bitboard

	// Skip non-king moves entirely when double-checked.
	if kind != GenEvasions || !p.Checkers.MoreThanOne() {
		switch kind {
		case GenEvasions:
			// Interpose on the checking ray or capture the checker.
			target = Between(ksq, p.Checkers.LSB())
		case GenNonEvasions:
			target = ^p.Occupied[us]
		case GenCaptures:
			target = p.Occupied[us.Other()]
		default: // GenQuiets
			target = ^p.AllOccupied
		}

		p.generatePawnMoves(us, kind, target, ml)
		p.generatePieceMoves(us, Knight, target, ml)
		p.generatePieceMoves(us, Bishop, target, ml)
		p.generatePieceMoves(us, Rook, target, ml)
		p.generatePieceMoves(us, Queen, target, ml)
	}

	// King steps. While evading, the king may run to any non-own square,
	// not only the current target mask.
	b := KingAttacks(ksq)
	if kind == GenEvasions {
		b &= ^p.Occupied[us]
	} else {
		b &= target
	}
	for b != 0 {
		ml.Add(NewMove(ksq, b.PopLSB()))
	}

	if kind == GenQuiets || kind == GenNonEvasions {
		for _, cr := range castlingRightOf[us] {
			if p.CanCastle(cr) && !p.CastlingImpeded(cr) {
				ml.Add(NewCastling(ksq, p.CastlingRookSquare(cr)))
			}
		}
	}
}

// generatePieceMoves emits knight, bishop, rook or queen moves whose
// destinations fall inside the target mask.
func (p *Position) generatePieceMoves(us Color, pt PieceType, target Bitboard, ml *MoveList) {
	bb := p.Pieces[us][pt]
	for bb != 0 {
		from := bb.PopLSB()
		b := AttacksBB(pt, from, p.AllOccupied) & target
		for b != 0 {
			ml.Add(NewMove(from, b.PopLSB()))
		}
	}
}

// makePromotions emits the promotion moves the kind admits: queen
// promotions belong to captures (and to the all-inclusive kinds),
// under-promotions to the side matching the push.
func makePromotions(kind GenType, d Direction, to Square, capture bool, ml *MoveList) {
	all := kind == GenEvasions || kind == GenNonEvasions
	from := Square(int(to) - int(d))

	if kind == GenCaptures || all {
		ml.Add(NewPromotion(from, to, Queen))
	}

	if (kind == GenCaptures && capture) || (kind == GenQuiets && !capture) || all {
		ml.Add(NewPromotion(from, to, Rook))
		ml.Add(NewPromotion(from, to, Bishop))
		ml.Add(NewPromotion(from, to, Knight))
	}
}

// generatePawnMoves emits pawn pushes, captures, promotions and en
// passant for one side. Pawns about to promote are handled separately
// from the rest.
func (p *Position) generatePawnMoves(us Color, kind GenType, target Bitboard, ml *MoveList) {
	them := us.Other()
	up := PawnPush(us)

	var rank7, rank3 Bitboard
	var upRight, upLeft Direction
	if us == White {
		rank7, rank3 = Rank7, Rank3
		upRight, upLeft = NorthEast, NorthWest
	} else {
		rank7, rank3 = Rank2, Rank6
		upRight, upLeft = SouthWest, SouthEast
	}

	emptySquares := ^p.AllOccupied
	enemies := p.Occupied[them]
	if kind == GenEvasions {
		// Captures must take the checker itself.
		enemies = p.Checkers
	}

	pawnsOn7 := p.Pieces[us][Pawn] & rank7
	pawnsNotOn7 := p.Pieces[us][Pawn] &^ rank7

	// Single and double pushes, no promotions
	if kind != GenCaptures {
		b1 := pawnsNotOn7.Shift(up) & emptySquares
		b2 := (b1 & rank3).Shift(up) & emptySquares

		if kind == GenEvasions { // blocking squares only
			b1 &= target
			b2 &= target
		}

		for b1 != 0 {
			to := b1.PopLSB()
			ml.Add(NewMove(Square(int(to)-int(up)), to))
		}

		for b2 != 0 {
			to := b2.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*int(up)), to))
		}
	}

	// Promotions and under-promotions
	if pawnsOn7 != 0 {
		b1 := pawnsOn7.Shift(upRight) & enemies
		b2 := pawnsOn7.Shift(upLeft) & enemies
		b3 := pawnsOn7.Shift(up) & emptySquares

		if kind == GenEvasions {
			b3 &= target
		}

		for b1 != 0 {
			makePromotions(kind, upRight, b1.PopLSB(), true, ml)
		}
		for b2 != 0 {
			makePromotions(kind, upLeft, b2.PopLSB(), true, ml)
		}
		for b3 != 0 {
			makePromotions(kind, up, b3.PopLSB(), false, ml)
		}
	}

	// Standard and en passant captures
	if kind == GenCaptures || kind == GenEvasions || kind == GenNonEvasions {
		b1 := pawnsNotOn7.Shift(upRight) & enemies
		b2 := pawnsNotOn7.Shift(upLeft) & enemies

		for b1 != 0 {
			to := b1.PopLSB()
			ml.Add(NewMove(Square(int(to)-int(upRight)), to))
		}

		for b2 != 0 {
			to := b2.PopLSB()
			ml.Add(NewMove(Square(int(to)-int(upLeft)), to))
		}

		if p.EnPassant != NoSquare {
			// An en passant capture cannot resolve a discovered check:
			// if the checking ray runs through the pushed pawn's origin,
			// neither capturing it nor landing behind it helps.
			if kind == GenEvasions && target&SquareBB(p.EnPassant.Add(up)) != 0 {
				return
			}

			b1 = pawnsNotOn7 & PawnAttacks(them, p.EnPassant)
			for b1 != 0 {
				ml.Add(NewEnPassant(b1.PopLSB(), p.EnPassant))
			}
		}
	}
}

// generateLegal generates evasions or non-evasions depending on the
// check state, then prunes the moves that would leave the king exposed.
// Only pinned-piece moves, king moves and en passant need the full
// legality check; the rest are legal by construction.
func (p *Position) generateLegal(ml *MoveList) {
	us := p.SideToMove
	pinned := p.BlockersForKing[us] & p.Occupied[us]
	ksq := p.KingSquare[us]

	if p.InCheck() {
		p.generateAll(GenEvasions, ml)
	} else {
		p.generateAll(GenNonEvasions, ml)
	}

	for i := 0; i < ml.Len(); {
		m := ml.Get(i)
		if (pinned&SquareBB(m.From()) != 0 || m.From() == ksq || m.IsEnPassant()) && !p.Legal(m) {
			ml.Remove(i)
		} else {
			i++
		}
	}
}
