package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pml76/Kangaroo/internal/magic"
)

// Storage keys
const (
	keyMagicsPrefix = "magics/"
)

// MagicRecord is a magic set together with how it was produced.
type MagicRecord struct {
	Magics    magic.MagicSet  `json:"magics"`
	Heuristic magic.Heuristic `json:"heuristic"`
	Duration  time.Duration   `json:"duration"`
	CreatedAt time.Time       `json:"created_at"`
}

// Storage wraps BadgerDB for persistent storage of generated magic numbers.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in DefaultDir.
func NewStorage() (*Storage, error) {
	dbDir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (creating if needed) a store in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open magic store %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// magicsKey identifies a record by everything that determines its magics.
func magicsKey(seed uint64, h magic.Heuristic) []byte {
	return []byte(fmt.Sprintf("%s%016x/%d-%d", keyMagicsPrefix, seed, h.Draws, h.MinHighBits))
}

// SaveMagics stores rec, replacing any record for the same seed and heuristic.
func (s *Storage) SaveMagics(rec *MagicRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(magicsKey(rec.Magics.Seed, rec.Heuristic), data)
	})
}

// LoadMagics returns the record for seed and heuristic. The boolean is false
// if none was stored.
func (s *Storage) LoadMagics(seed uint64, h magic.Heuristic) (*MagicRecord, bool, error) {
	var (
		rec   MagicRecord
		found bool
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(magicsKey(seed, h))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return nil, false, err
	}

	return &rec, true, nil
}

// DeleteMagics removes the record for seed and heuristic, if any.
func (s *Storage) DeleteMagics(seed uint64, h magic.Heuristic) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(magicsKey(seed, h))
	})
}

// Seeds lists the seeds with a stored record, in key order.
func (s *Storage) Seeds() ([]uint64, error) {
	var seeds []uint64

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyMagicsPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), keyMagicsPrefix)
			hexSeed, _, _ := strings.Cut(rest, "/")
			seed, err := strconv.ParseUint(hexSeed, 16, 64)
			if err != nil {
				return fmt.Errorf("malformed magic key %q: %w", it.Item().Key(), err)
			}
			if len(seeds) == 0 || seeds[len(seeds)-1] != seed {
				seeds = append(seeds, seed)
			}
		}
		return nil
	})

	return seeds, err
}
