// Package storage defines the key-value persistence contract used by the
// library stores, plus the namespaced keys they own.
//
// Each store fully reads and fully rewrites its own key on every mutation.
// There are no partial writes at this layer, which bounds a concurrent
// writer race to one store's entire record set.
package storage

import "context"

// Adapter is a namespaced key-value store of JSON-serializable values.
//
// Get decodes the stored value into dest and reports whether the key was
// present. Implementations must treat an absent key as (false, nil), never
// as an error.
type Adapter interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

const (
	// KeyBookmarks holds the ordered list of bookmarked case ids.
	KeyBookmarks = "caselens:bookmarks"
	// KeyCollections holds the list of collection records.
	KeyCollections = "caselens:collections"
	// KeyCaseCache holds the map of case id to cached case record.
	KeyCaseCache = "caselens:cases"
)
