// Package store implements the persistence gateway: a key-value blob store
// holding audit session artifacts as JSON, keyed by session identifier.
// Writes are independent and last-write-wins; there is no transaction
// across keys.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is the persistence gateway contract.
type Store interface {
	// Put stores value under key, JSON-encoded. Overwrites any prior value.
	Put(ctx context.Context, key string, value any) error

	// Get decodes the value stored under key into dest. Returns ErrNotFound
	// when the key is absent.
	Get(ctx context.Context, key string, dest any) error
}
