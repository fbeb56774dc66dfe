package board

// Perft counts the leaf nodes of the legal move tree at the given depth.
// This is the standard way to verify move generation correctness.
func Perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var ml MoveList
	p.Generate(GenLegal, &ml)

	if depth == 1 {
		return int64(ml.Len())
	}

	var nodes int64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// DivideEntry is one root move with its subtree node count.
type DivideEntry struct {
	Move  Move
	Nodes int64
}

// Divide returns the perft breakdown per root move. The sum of the
// entries equals Perft(p, depth).
func Divide(p *Position, depth int) []DivideEntry {
	var ml MoveList
	p.Generate(GenLegal, &ml)

	entries := make([]DivideEntry, 0, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(p, depth-1)})
		p.UnmakeMove(m, undo)
	}
	return entries
}
