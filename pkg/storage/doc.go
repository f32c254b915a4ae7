// Package storage provides durable key-value persistence for the session
// store. It is the Go stand-in for the browser's localStorage primitive.
//
// Three backends are provided:
//
//   - MemoryStore: process-local, the default. State is lost on restart.
//   - BoltStore: single-file persistence backed by go.etcd.io/bbolt.
//   - RedisStore: shared persistence backed by redis/go-redis.
//
// All backends are safe for concurrent use. A missing key is reported via
// the ok result of Get, never as an error.
package storage
