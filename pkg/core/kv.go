package core

import "context"

// KV defines the contract for the string-keyed local store.
// Adhering to this interface keeps the engine independent of the underlying
// medium (flat files, BadgerDB, memory).
type KV interface {
	// Get retrieves the raw value for a key. Returns ErrKeyNotFound when
	// the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, creating or replacing it.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix, in unspecified order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases backend resources. The store is unusable afterwards.
	Close() error
}

// EventType represents the type of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an externally observed change to a key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// Watchable is implemented by backends that can report external changes.
// The pattern is a doublestar glob matched against keys; the channel closes
// when ctx is done.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
