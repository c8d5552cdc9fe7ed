// Package state persists session snapshots between connections. Values
// are stored as bytes with a TTL; TypedStore adds serialization.
package state

import (
	"context"
	"errors"
	"time"
)

// Common store errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreClosed = errors.New("store is closed")
	ErrInvalidData = errors.New("invalid data format")
)

// Store is the interface for state storage backends.
type Store interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the store.
	Close() error
}

// Serializer handles serialization/deserialization.
type Serializer[T any] interface {
	Serialize(value T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// TypedStore provides type-safe access to a Store under a key prefix.
type TypedStore[T any] struct {
	store      Store
	serializer Serializer[T]
	prefix     string
	ttl        time.Duration
}

// NewTypedStore creates a typed store. Every Save uses ttl.
func NewTypedStore[T any](store Store, serializer Serializer[T], prefix string, ttl time.Duration) *TypedStore[T] {
	return &TypedStore[T]{
		store:      store,
		serializer: serializer,
		prefix:     prefix,
		ttl:        ttl,
	}
}

// Load retrieves and deserializes a value.
func (ts *TypedStore[T]) Load(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := ts.store.Get(ctx, ts.prefix+key)
	if err != nil {
		return zero, err
	}
	return ts.serializer.Deserialize(data)
}

// Save serializes and stores a value, refreshing its TTL.
func (ts *TypedStore[T]) Save(ctx context.Context, key string, value T) error {
	data, err := ts.serializer.Serialize(value)
	if err != nil {
		return err
	}
	return ts.store.Set(ctx, ts.prefix+key, data, ts.ttl)
}

// Delete removes a key.
func (ts *TypedStore[T]) Delete(ctx context.Context, key string) error {
	return ts.store.Delete(ctx, ts.prefix+key)
}
