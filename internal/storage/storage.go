package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// PerftResult is one cached perft computation.
type PerftResult struct {
	FEN        string        `json:"fen"`
	Depth      int           `json:"depth"`
	Nodes      int64         `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	ComputedAt time.Time     `json:"computed_at"`
}

// Store wraps BadgerDB for persistent perft result caching.
type Store struct {
	db *badger.DB
}

// Open opens the store in the default platform data directory.
func Open() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store in the given directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// perftKey builds the cache key for a position and depth.
func perftKey(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("perft|%s|%d", fen, depth))
}

// PutPerft stores a perft result.
func (s *Store) PutPerft(result PerftResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(result.FEN, result.Depth), data)
	})
}

// GetPerft looks up a cached perft result. The second return value is
// false when the position/depth pair has not been computed yet.
func (s *Store) GetPerft(fen string, depth int) (PerftResult, bool, error) {
	var result PerftResult
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &result); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	return result, found, err
}
