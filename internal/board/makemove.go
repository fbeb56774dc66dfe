package board

// UndoInfo snapshots the state MakeMove cannot cheaply recompute.
// Restoring the full bitboard set keeps unmake trivially correct.
type UndoInfo struct {
	CapturedPiece   Piece
	CastlingRights  CastlingRights
	EnPassant       Square
	HalfMoveClock   int
	Hash            uint64
	Checkers        Bitboard
	BlockersForKing [2]Bitboard
	Pinners         [2]Bitboard
	KingSquare      [2]Square
	Pieces          [2][6]Bitboard
	Occupied        [2]Bitboard
	AllOccupied     Bitboard
}

// MakeMove applies a move to the position and returns undo information.
// The move must be pseudo-legal for the side to move.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:   NoPiece,
		CastlingRights:  p.CastlingRights,
		EnPassant:       p.EnPassant,
		HalfMoveClock:   p.HalfMoveClock,
		Hash:            p.Hash,
		Checkers:        p.Checkers,
		BlockersForKing: p.BlockersForKing,
		Pinners:         p.Pinners,
		KingSquare:      p.KingSquare,
		Pieces:          p.Pieces,
		Occupied:        p.Occupied,
		AllOccupied:     p.AllOccupied,
	}

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsCastling() {
		// from is the king, to is the castling rook. Remove both first:
		// with the rook-square encoding the two paths may overlap.
		kto := m.KingTo()
		rto := m.RookTo()

		p.removePiece(from)
		p.removePiece(to)
		p.setPiece(NewPiece(King, us), kto)
		p.setPiece(NewPiece(Rook, us), rto)

		p.Hash ^= zobristPiece[us][King][from] ^ zobristPiece[us][King][kto]
		p.Hash ^= zobristPiece[us][Rook][to] ^ zobristPiece[us][Rook][rto]

		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
		p.Hash ^= zobristCastling[p.CastlingRights]

		p.HalfMoveClock++
		if us == Black {
			p.FullMoveNumber++
		}
		p.SideToMove = them
		p.computeCheckInfo()
		return undo
	}

	pt := p.PieceAt(from).Type()

	// Captures
	if m.IsEnPassant() {
		capsq := Square(int(to) - int(PawnPush(us)))
		undo.CapturedPiece = p.removePiece(capsq)
		p.Hash ^= zobristPiece[them][Pawn][capsq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.removePiece(to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promoPt][to]
	}

	// Castling rights decay when the king or a rook moves, or a rook is
	// captured on its home square.
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.Hash ^= zobristCastling[p.CastlingRights]

	// Double pawn push opens an en passant opportunity.
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassant[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.computeCheckInfo()

	return undo
}

// UnmakeMove undoes a move using the stored undo information.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	us := p.SideToMove.Other()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.BlockersForKing = undo.BlockersForKing
	p.Pinners = undo.Pinners
	p.KingSquare = undo.KingSquare
	p.Pieces = undo.Pieces
	p.Occupied = undo.Occupied
	p.AllOccupied = undo.AllOccupied
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}
}
