package core

import "errors"

// Common errors.
var (
	// ErrKeyNotFound is returned by KV.Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNoteNotFound is returned when a note id does not resolve in the
	// persisted collection.
	ErrNoteNotFound = errors.New("note not found")

	// ErrReadOnly is returned by mutating calls on a read-only store.
	ErrReadOnly = errors.New("store is in read-only mode")

	// ErrProtected refuses deletion of a note flagged as protected.
	ErrProtected = errors.New("note is protected from deletion")

	// ErrStoreFull signals a storage-quota condition. It is recoverable:
	// workflows offer the user choices instead of failing outright.
	ErrStoreFull = errors.New("storage quota exceeded")

	// ErrValidation tags failures produced by the validation engine so the
	// classifier can recognize them regardless of message wording.
	ErrValidation = errors.New("validation failed")
)
