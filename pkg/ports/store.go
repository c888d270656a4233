package ports

import (
	"context"
)

// SaveStore defines durable key/value storage for serialized saves.
// Stores deal in opaque bytes; encoding and validation belong to the persistence gateway.
type SaveStore interface {
	// Put writes data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the value under key.
	// Returns domain.ErrSaveNotFound if the key holds nothing.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every key currently stored.
	List(ctx context.Context) ([]string, error)
}
