package core

import "context"

// KeyValueStore is the local key-value storage the repositories persist into.
type KeyValueStore interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
