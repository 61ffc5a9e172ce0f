package dummydb

import (
	"context"
	"sync"

	"github.com/trezcool/lessonnotes/core"
)

// DB is an in-memory key-value store, for tests and throwaway runs.
type DB struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KeyValueStore = (*DB)(nil)

func Open() (*DB, error) {
	return &DB{table: make(map[string][]byte)}, nil
}

func (db *DB) Get(_ context.Context, key string) ([]byte, bool, error) {
	db.RLock()
	defer db.RUnlock()

	val, ok := db.table[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, val...), true, nil
}

func (db *DB) Set(_ context.Context, key string, value []byte) error {
	db.Lock()
	defer db.Unlock()
	db.table[key] = append([]byte{}, value...)
	return nil
}

func (db *DB) Close() error { return nil }
