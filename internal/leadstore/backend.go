// Package leadstore persists fallback-saved leads as one JSON array under a
// single key. Backends only know how to get and set that key; the Store does
// the read-modify-write on top.
package leadstore

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by a Backend when nothing was ever written under the key.
	ErrKeyNotFound = errors.New("leadstore: key not found")

	// ErrInvalidKey is returned for keys a backend cannot address.
	ErrInvalidKey = errors.New("leadstore: invalid key")
)

// Backend is a single-value-per-key byte store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
