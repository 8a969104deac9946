// Package store is the record store under the ledger: a key-value database
// plus a write overlay that turns one instruction into one atomic batch.
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/log"
)

var (
	ErrTxnClosed = errors.New("store: transaction already committed or discarded")
	ErrReadOnly  = errors.New("store: read-only")
)

// Store wraps a key-value database.
type Store struct {
	db       ethdb.KeyValueStore
	readonly bool
	log      log.Logger
}

// New wraps an already open database.
func New(db ethdb.KeyValueStore) *Store {
	return &Store{
		db:  db,
		log: log.New("module", "store"),
	}
}

// OpenMemory returns an empty in-memory store.
func OpenMemory() *Store {
	return New(memorydb.New())
}

// OpenLevelDB opens (or creates) a LevelDB store in dir.
func OpenLevelDB(dir string, cache, handles int, readonly bool) (*Store, error) {
	db, err := leveldb.New(dir, cache, handles, "lvt/db/", readonly)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", dir, err)
	}
	s := New(db)
	s.readonly = readonly
	return s, nil
}

// Get returns the committed value under key. Missing keys are reported
// with ok == false and no error.
func (s *Store) Get(key []byte) (val []byte, ok bool, err error) {
	ok, err = s.db.Has(key)
	if err != nil || !ok {
		return nil, false, err
	}
	val, err = s.db.Get(key)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Iterate calls fn for every committed key with the given prefix, in key
// order, until fn returns false.
func (s *Store) Iterate(prefix []byte, fn func(key, val []byte) bool) error {
	it := s.db.NewIterator(prefix, nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

// Begin opens a write overlay on top of the committed state.
func (s *Store) Begin() *Txn {
	return &Txn{
		store:  s,
		writes: make(map[string][]byte),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Txn stages writes in memory. Reads see staged values first. Nothing
// reaches the database until Commit, which writes every staged key in a
// single batch. A Txn is not safe for concurrent use.
type Txn struct {
	store  *Store
	writes map[string][]byte
	closed bool
}

// Get reads through the overlay.
func (t *Txn) Get(key []byte) ([]byte, bool, error) {
	if t.closed {
		return nil, false, ErrTxnClosed
	}
	if v, ok := t.writes[string(key)]; ok {
		return v, true, nil
	}
	return t.store.Get(key)
}

// Has reports whether key exists in the overlay or the committed state.
func (t *Txn) Has(key []byte) (bool, error) {
	_, ok, err := t.Get(key)
	return ok, err
}

// Put stages a write. The value is copied.
func (t *Txn) Put(key, val []byte) error {
	if t.closed {
		return ErrTxnClosed
	}
	if t.store.readonly {
		return ErrReadOnly
	}
	t.writes[string(key)] = append([]byte(nil), val...)
	return nil
}

// Len is the number of staged keys.
func (t *Txn) Len() int {
	return len(t.writes)
}

// Commit writes the overlay atomically and closes the Txn.
func (t *Txn) Commit() error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	if len(t.writes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(t.writes))
	for k := range t.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batch := t.store.db.NewBatch()
	for _, k := range keys {
		if err := batch.Put([]byte(k), t.writes[k]); err != nil {
			return fmt.Errorf("stage %x: %w", k, err)
		}
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	t.store.log.Trace("Committed records", "keys", len(keys), "size", batch.ValueSize())
	t.writes = nil
	return nil
}

// Discard drops every staged write. It is a no-op after Commit.
func (t *Txn) Discard() {
	t.closed = true
	t.writes = nil
}
