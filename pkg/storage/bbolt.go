package storage

import (
	"context"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"
)

// defaultBucket is the bucket all shell keys live in.
var defaultBucket = []byte("appshell")

// BoltStore is a key-value store backed by a BBolt database file.
// It gives the shell durable state across process restarts without an
// external service.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte

	mu     sync.Mutex
	closed bool
	ownsDB bool
}

// BoltOption configures BoltStore behavior.
type BoltOption func(*BoltStore)

// WithBucket sets the bucket name shell keys are stored under.
// Default: "appshell".
func WithBucket(name string) BoltOption {
	return func(s *BoltStore) {
		if name != "" {
			s.bucket = []byte(name)
		}
	}
}

// NewBoltStore wraps an already-open BBolt database.
// Close does not close the database; it may be shared with other components.
func NewBoltStore(db *bbolt.DB, opts ...BoltOption) *BoltStore {
	s := &BoltStore{
		db:     db,
		bucket: defaultBucket,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenBoltStore opens (or creates) a BBolt database at path and returns a
// store that owns it. Close closes the underlying database.
func OpenBoltStore(path string, options *bbolt.Options, opts ...BoltOption) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	s := NewBoltStore(db, opts...)
	s.ownsDB = true
	return s, nil
}

// Set stores a value under key.
func (s *BoltStore) Set(ctx context.Context, key, value string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Get retrieves the value for key, if present.
func (s *BoltStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.isClosed() {
		return "", false, ErrStoreClosed{}
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		if data := b.Get([]byte(key)); data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

// Delete removes a key from the store.
func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if s.isClosed() {
		return ErrStoreClosed{}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Close marks the store as closed, and closes the underlying database if
// this store opened it.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

func (s *BoltStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
