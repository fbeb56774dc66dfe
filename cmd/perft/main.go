// Command perft counts move-generation tree leaves for a position, with
// optional per-root-move breakdown and a persistent result cache.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/oakmage/chesscore/internal/board"
	"github.com/oakmage/chesscore/internal/storage"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	useCache := flag.Bool("cache", false, "read/write results in the local result cache")
	cacheDir := flag.String("cache-dir", "", "cache directory (defaults to the platform data dir)")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parsing FEN: %v", err)
	}

	if *divide {
		runDivide(pos, *depth)
		return
	}

	var store *storage.Store
	if *useCache {
		if *cacheDir != "" {
			store, err = storage.OpenAt(*cacheDir)
		} else {
			store, err = storage.Open()
		}
		if err != nil {
			log.Fatalf("opening result cache: %v", err)
		}
		defer store.Close()

		if cached, found, err := store.GetPerft(*fen, *depth); err != nil {
			log.Printf("cache lookup failed: %v", err)
		} else if found {
			fmt.Printf("perft(%d) = %d (cached, computed %s in %v)\n",
				cached.Depth, cached.Nodes,
				cached.ComputedAt.Format(time.RFC3339), cached.Elapsed)
			return
		}
	}

	start := time.Now()
	nodes := board.Perft(pos, *depth)
	elapsed := time.Since(start)

	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("perft(%d) = %d in %v (%.0f nodes/s)\n", *depth, nodes, elapsed, nps)

	if store != nil {
		err := store.PutPerft(storage.PerftResult{
			FEN:        *fen,
			Depth:      *depth,
			Nodes:      nodes,
			Elapsed:    elapsed,
			ComputedAt: time.Now(),
		})
		if err != nil {
			log.Printf("cache store failed: %v", err)
		}
	}
}

func runDivide(pos *board.Position, depth int) {
	entries := board.Divide(pos, depth)

	// Sort by move string for stable output
	slices.SortFunc(entries, func(a, b board.DivideEntry) int {
		return strings.Compare(a.Move.String(), b.Move.String())
	})

	var sum int64
	for _, e := range entries {
		fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		sum += e.Nodes
	}
	fmt.Printf("Total: %d\n", sum)
}
