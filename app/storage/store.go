package storage

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrConditionFailed = errors.New("conditional check failed")
)

// Collection names used by the application.
const (
	Posts     = "posts"
	Users     = "users"
	HashTags  = "hashtags"
	Locations = "locations"
)

// Condition is evaluated against the current serialized document inside the
// same transaction as the write it guards. Returning false aborts the write
// with ErrConditionFailed.
type Condition func(current []byte) bool

// Patch produces the full replacement document from the current one.
type Patch func(current []byte) ([]byte, error)

// Filter selects documents during a scan. The key excludes the collection
// prefix.
type Filter func(key string, doc []byte) bool

// Store is a key-addressed document collection. Every operation addresses
// exactly one collection and, except Scan, exactly one document; atomicity is
// per document only. There are no multi-document transactions.
type Store interface {
	// Get unmarshals the document at key into out, or returns ErrNotFound.
	Get(collection, key string, out any) error

	// Put writes doc at key, overwriting any existing document.
	Put(collection, key string, doc any) error

	// Update atomically replaces the document at key with apply(current).
	// A nil cond always passes; an unmet cond returns ErrConditionFailed
	// and leaves the document untouched. A missing document returns
	// ErrNotFound.
	Update(collection, key string, cond Condition, apply Patch) error

	// Delete removes the document at key, subject to the same conditional
	// semantics as Update.
	Delete(collection, key string, cond Condition) error

	// Scan walks the collection in key order, returning up to limit
	// matching documents (limit <= 0 means no limit) starting after the
	// startAfter key. A non-empty next cursor means more documents remain.
	// This is a full-collection walk; callers must not assume sub-linear
	// cost.
	Scan(collection string, filter Filter, limit int, startAfter string) (items [][]byte, next string, err error)

	Close() error
}
