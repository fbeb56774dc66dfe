// Package book reads Polyglot-format opening books and probes them for
// moves, validating every hit against the legal move generator.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/oakmage/chesscore/internal/board"
)

// Entry is a single book entry.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an opening book keyed by Polyglot position hash.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]Entry),
	}
}

// LoadPolyglot loads a Polyglot format opening book from a file.
func LoadPolyglot(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadPolyglotReader(file)
}

// LoadPolyglotReader loads a Polyglot format book from a reader.
//
// Entry layout: 8 bytes position key, 2 bytes move, 2 bytes weight,
// 4 bytes learn data (ignored), all big-endian.
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	book := New()

	var entry [16]byte
	for {
		_, err := io.ReadFull(r, entry[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(entry[0:8])
		moveData := binary.BigEndian.Uint16(entry[8:10])
		weight := binary.BigEndian.Uint16(entry[10:12])

		move := decodePolyglotMove(moveData)
		if move != board.NoMove {
			book.entries[key] = append(book.entries[key], Entry{
				Move:   move,
				Weight: weight,
			})
		}
	}

	return book, nil
}

// decodePolyglotMove converts a Polyglot move encoding to a Move.
// Polyglot bits: 0-5 to square, 6-11 from square, 12-14 promotion piece
// (0=none, 1=knight, 2=bishop, 3=rook, 4=queen). Castling is encoded as
// king-takes-rook, which maps directly onto the rook-square encoding.
func decodePolyglotMove(data uint16) board.Move {
	toFile := data & 7
	toRank := (data >> 3) & 7
	fromFile := (data >> 6) & 7
	fromRank := (data >> 9) & 7
	promo := (data >> 12) & 7

	from := board.NewSquare(int(fromFile), int(fromRank))
	to := board.NewSquare(int(toFile), int(toRank))

	if (from == board.E1 && (to == board.H1 || to == board.A1)) ||
		(from == board.E8 && (to == board.H8 || to == board.A8)) {
		return board.NewCastling(from, to)
	}

	if promo > 0 {
		promoTypes := [5]board.PieceType{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		return board.NewPromotion(from, to, promoTypes[promo])
	}

	return board.NewMove(from, to)
}

// Probe looks up a position and returns a book move using weighted
// random selection. Returns false when the position is unknown or none
// of its entries is legal.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}

	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		return board.NoMove, false
	}

	totalWeight := uint32(0)
	for _, e := range entries {
		totalWeight += uint32(e.Weight)
	}

	if totalWeight == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % totalWeight
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}

	return entries[0].Move, true
}

// ProbeAll returns the legal book moves for the position, sorted by
// weight, highest first. Entries that do not correspond to a legal move
// are dropped.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}

	entries, ok := b.entries[pos.PolyglotHash()]
	if !ok {
		return nil
	}

	legal := pos.GenerateLegalMoves()

	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if m := matchLegal(legal, e.Move); m != board.NoMove {
			result = append(result, Entry{Move: m, Weight: e.Weight})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})

	return result
}

// matchLegal finds the legal move matching a decoded book move, fixing
// up flags the Polyglot encoding cannot carry (en passant).
func matchLegal(legal *board.MoveList, move board.Move) board.Move {
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != move.From() || lm.To() != move.To() {
			continue
		}
		if move.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if move.IsPromotion() && move.Promotion() != lm.Promotion() {
			continue
		}
		if move.IsCastling() != lm.IsCastling() {
			continue
		}
		return lm
	}
	return board.NoMove
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
