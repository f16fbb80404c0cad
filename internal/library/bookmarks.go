package library

import (
	"context"
	"sync"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/storage"
)

// Bookmarks is the ordered set of case ids the user has saved.
// Duplicates are forbidden; insertion order is preserved. The set is
// independent of collections: clearing or removing bookmarks never touches
// collection membership, and vice versa.
type Bookmarks struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	log     logger.Logger
	cache   *CaseCache

	ids     []string
	present map[string]struct{}
}

// NewBookmarks builds the bookmark set, loading previously persisted ids.
// Duplicates in the persisted list (from an older bug or a hand-edited
// store) are dropped on load.
func NewBookmarks(ctx context.Context, adapter storage.Adapter, cache *CaseCache, log logger.Logger) *Bookmarks {
	b := &Bookmarks{
		adapter: adapter,
		log:     log,
		cache:   cache,
		present: make(map[string]struct{}),
	}

	var persisted []string
	found, err := adapter.Get(ctx, storage.KeyBookmarks, &persisted)
	if err != nil {
		log.Warn("failed to load bookmarks, starting empty", logger.Error(err))
		return b
	}
	if found {
		for _, id := range persisted {
			if _, dup := b.present[id]; dup || id == "" {
				continue
			}
			b.ids = append(b.ids, id)
			b.present[id] = struct{}{}
		}
	}
	return b
}

// IDs returns the bookmarked case ids in insertion order.
func (b *Bookmarks) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, len(b.ids))
	copy(ids, b.ids)
	return ids
}

// Contains reports whether caseID is bookmarked.
func (b *Bookmarks) Contains(caseID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.present[caseID]
	return ok
}

// Add bookmarks caseID. No-op if already present.
func (b *Bookmarks) Add(ctx context.Context, caseID string) {
	if caseID == "" {
		return
	}
	b.mu.Lock()
	if _, ok := b.present[caseID]; ok {
		b.mu.Unlock()
		return
	}
	b.ids = append(b.ids, caseID)
	b.present[caseID] = struct{}{}
	snapshot := b.snapshotLocked()
	b.mu.Unlock()

	b.persist(ctx, snapshot)
}

// Remove un-bookmarks caseID. No-op if absent. Collections are untouched.
func (b *Bookmarks) Remove(ctx context.Context, caseID string) {
	b.mu.Lock()
	if _, ok := b.present[caseID]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.present, caseID)
	for i, id := range b.ids {
		if id == caseID {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			break
		}
	}
	snapshot := b.snapshotLocked()
	b.mu.Unlock()

	b.persist(ctx, snapshot)
}

// Toggle flips the bookmark state of caseID and reports the state after
// the call: true means the case is now bookmarked.
func (b *Bookmarks) Toggle(ctx context.Context, caseID string) bool {
	if b.Contains(caseID) {
		b.Remove(ctx, caseID)
		return false
	}
	b.Add(ctx, caseID)
	return true
}

// Clear empties the bookmark set. Collections are untouched.
func (b *Bookmarks) Clear(ctx context.Context) {
	b.mu.Lock()
	b.ids = nil
	b.present = make(map[string]struct{})
	b.mu.Unlock()

	b.persist(ctx, []string{})
}

// Count returns the number of bookmarked ids.
func (b *Bookmarks) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.ids)
}

// Cases resolves the bookmarked ids through the case cache, in bookmark
// order. Ids with no cached record are dropped, not represented as
// placeholders.
func (b *Bookmarks) Cases() []domain.Case {
	return b.cache.GetMany(b.IDs())
}

func (b *Bookmarks) snapshotLocked() []string {
	snapshot := make([]string, len(b.ids))
	copy(snapshot, b.ids)
	return snapshot
}

func (b *Bookmarks) persist(ctx context.Context, snapshot []string) {
	if err := b.adapter.Set(ctx, storage.KeyBookmarks, snapshot); err != nil {
		b.log.Warn("failed to persist bookmarks, keeping in-memory state",
			logger.Error(err))
	}
}
