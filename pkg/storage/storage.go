package storage

import "context"

// Store defines the interface for durable key-value backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Set persists a value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Get retrieves the value for key.
	// Returns ("", false, nil) if the key doesn't exist.
	// Returns (value, true, nil) if found.
	// Returns ("", false, err) on backend errors.
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes a key. It is not an error if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "storage: store is closed"
}
