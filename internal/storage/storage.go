// Package storage archives finished games in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chess-engine/internal/model"
	badger "github.com/dgraph-io/badger/v4"
)

const keyPrefix = "game/"

// ErrRecordNotFound is returned by Load for an unknown game ID.
var ErrRecordNotFound = errors.New("record not found")

// Record is the archived summary of one finished game.
type Record struct {
	ID         string           `json:"id"`
	White      string           `json:"white"`
	Black      string           `json:"black"`
	Status     model.GameStatus `json:"status"`
	Winner     model.Player     `json:"winner,omitempty"`
	Moves      []string         `json:"moves"`
	FinishedAt time.Time        `json:"finishedAt"`
}

// Storage wraps BadgerDB for the game archive
type Storage struct {
	db *badger.DB
}

// Open opens the archive in dir; an empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
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

func (s *Storage) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+rec.ID), data)
	})
}

func (s *Storage) Load(id string) (Record, error) {
	var rec Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	return rec, err
}

// List returns every archived game in key order.
func (s *Storage) List() ([]Record, error) {
	var out []Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})

	return out, err
}
