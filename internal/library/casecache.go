// Package library implements the user's case library: the case cache, the
// bookmark set and the collection store.
//
// Every store keeps its state in memory and writes the whole record set
// through the storage adapter after each mutation. A failed write is logged
// and swallowed: the in-memory state stays authoritative for the running
// process, it just won't survive a restart. Unknown ids are never errors;
// they come back as nil/false/empty.
package library

import (
	"context"
	"sync"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/storage"
)

// CaseCache is a lookup table of full case records, keyed by case id.
// It is populated by the search/browse layer whenever a case record passes
// through; it never fetches anything on its own. Cached display data is a
// best-effort projection: an id referenced by a bookmark or collection may
// have no cache entry, and consumers must cope with that.
type CaseCache struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	log     logger.Logger
	cases   map[string]domain.Case
}

// NewCaseCache builds the cache, loading previously persisted entries.
// A load failure starts the cache empty instead of failing.
func NewCaseCache(ctx context.Context, adapter storage.Adapter, log logger.Logger) *CaseCache {
	c := &CaseCache{
		adapter: adapter,
		log:     log,
		cases:   make(map[string]domain.Case),
	}

	var persisted map[string]domain.Case
	found, err := adapter.Get(ctx, storage.KeyCaseCache, &persisted)
	if err != nil {
		log.Warn("failed to load case cache, starting empty", logger.Error(err))
	} else if found {
		c.cases = persisted
	}
	return c
}

// Put upserts a case record by id. Later writes overwrite.
func (c *CaseCache) Put(ctx context.Context, cs domain.Case) {
	if cs.CaseID == "" {
		return
	}
	c.mu.Lock()
	c.cases[cs.CaseID] = cs
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, snapshot)
}

// PutMany upserts a batch of case records with a single persisted write.
func (c *CaseCache) PutMany(ctx context.Context, cases []domain.Case) {
	if len(cases) == 0 {
		return
	}
	c.mu.Lock()
	for _, cs := range cases {
		if cs.CaseID != "" {
			c.cases[cs.CaseID] = cs
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(ctx, snapshot)
}

// Get returns the cached record for id, if any.
func (c *CaseCache) Get(id string) (domain.Case, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cs, ok := c.cases[id]
	return cs, ok
}

// GetMany resolves ids to cached records, silently dropping ids with no
// entry. The result may be shorter than the input.
func (c *CaseCache) GetMany(ids []string) []domain.Case {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cases := make([]domain.Case, 0, len(ids))
	for _, id := range ids {
		if cs, ok := c.cases[id]; ok {
			cases = append(cases, cs)
		}
	}
	return cases
}

// Size returns the number of cached records.
func (c *CaseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cases)
}

func (c *CaseCache) snapshotLocked() map[string]domain.Case {
	snapshot := make(map[string]domain.Case, len(c.cases))
	for id, cs := range c.cases {
		snapshot[id] = cs
	}
	return snapshot
}

func (c *CaseCache) persist(ctx context.Context, snapshot map[string]domain.Case) {
	if err := c.adapter.Set(ctx, storage.KeyCaseCache, snapshot); err != nil {
		c.log.Warn("failed to persist case cache, keeping in-memory state",
			logger.Error(err))
	}
}
