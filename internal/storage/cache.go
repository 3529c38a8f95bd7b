// Package storage keeps finished search results in an in-memory BadgerDB so a
// repeated position does not have to be searched again.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Entry is a cached search result.
type Entry struct {
	Move     string    `json:"move"`
	Score    int       `json:"score"`
	Depth    int       `json:"depth"`
	Nodes    uint64    `json:"nodes"`
	StoredAt time.Time `json:"stored_at"`
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
	Writes uint64
}

// Cache wraps an in-memory BadgerDB. Nothing is written to disk.
type Cache struct {
	db *badger.DB

	hits   atomic.Uint64
	misses atomic.Uint64
	writes atomic.Uint64
}

// minSizeMB keeps the value threshold below badger's batch limit, which is
// derived from the memtable size.
const minSizeMB = 16

// NewCache opens an in-memory cache with the given memtable size in MB.
func NewCache(sizeMB int) (*Cache, error) {
	if sizeMB < minSizeMB {
		sizeMB = minSizeMB
	}
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithMemTableSize(int64(sizeMB) << 20)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open analysis cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func searchKey(hash uint64, depth int) []byte {
	return []byte(fmt.Sprintf("search/%016x/%d", hash, depth))
}

// Get returns the entry stored for a position hash and search depth.
func (c *Cache) Get(hash uint64, depth int) (Entry, bool, error) {
	var entry Entry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(searchKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Entry{}, false, err
	}

	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return entry, found, nil
}

// Put stores an entry for a position hash and search depth, replacing any
// previous one.
func (c *Cache) Put(hash uint64, depth int, entry Entry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(searchKey(hash, depth), data)
	})
	if err != nil {
		return err
	}
	c.writes.Add(1)
	return nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	return c.db.DropAll()
}

// Stats returns lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Writes: c.writes.Load(),
	}
}
