package library

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/storage"
)

// Collections manages named groups of case ids.
//
// The store itself never bookmarks anything: the convention that adding a
// case to a collection also bookmarks it (and caches the record) is owned
// by the HTTP layer. See handlers.CollectionAddCase.
type Collections struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	log     logger.Logger
	cache   *CaseCache

	items []*domain.Collection
	now   func() time.Time
}

// UpdateParams carries the mutable collection fields for Update.
// A nil field means "leave unchanged".
type UpdateParams struct {
	Name        *string
	Description *string
}

// NewCollections builds the collection store, loading persisted records.
func NewCollections(ctx context.Context, adapter storage.Adapter, cache *CaseCache, log logger.Logger) *Collections {
	s := &Collections{
		adapter: adapter,
		log:     log,
		cache:   cache,
		now:     time.Now,
	}

	var persisted []*domain.Collection
	found, err := adapter.Get(ctx, storage.KeyCollections, &persisted)
	if err != nil {
		log.Warn("failed to load collections, starting empty", logger.Error(err))
	} else if found {
		s.items = persisted
	}
	return s
}

// Create adds a new collection with a fresh id. The name must be non-empty
// after trimming, otherwise a domain.ValidationError is returned.
func (s *Collections) Create(ctx context.Context, name, description string) (*domain.Collection, error) {
	trimmed, err := domain.ValidateName(name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	col := &domain.Collection{
		ID:          uuid.NewString(),
		Name:        trimmed,
		Description: description,
		CaseIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	s.items = append(s.items, col)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return copyCollection(col), nil
}

// Update merges the provided fields into the collection and bumps
// UpdatedAt. Returns (nil, nil) when id is unknown. A provided-but-empty
// name is rejected with a domain.ValidationError.
func (s *Collections) Update(ctx context.Context, id string, params UpdateParams) (*domain.Collection, error) {
	var trimmed string
	if params.Name != nil {
		var err error
		if trimmed, err = domain.ValidateName(*params.Name); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	col := s.findLocked(id)
	if col == nil {
		s.mu.Unlock()
		return nil, nil
	}
	if params.Name != nil {
		col.Name = trimmed
	}
	if params.Description != nil {
		col.Description = *params.Description
	}
	col.UpdatedAt = s.now()
	updated := copyCollection(col)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return updated, nil
}

// Delete removes the collection and reports whether it existed.
// Member cases stay bookmarked; deletion does not cascade.
func (s *Collections) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := -1
	for i, col := range s.items {
		if col.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// AddCase adds caseID to the collection's membership. Returns false when
// the collection is unknown or the case is already a member.
func (s *Collections) AddCase(ctx context.Context, collectionID, caseID string) bool {
	if caseID == "" {
		return false
	}
	s.mu.Lock()
	col := s.findLocked(collectionID)
	if col == nil || col.Contains(caseID) {
		s.mu.Unlock()
		return false
	}
	col.CaseIDs = append(col.CaseIDs, caseID)
	col.UpdatedAt = s.now()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// RemoveCase removes membership only; the bookmark (if any) survives.
// Returns false when the collection is unknown or the case was not a member.
func (s *Collections) RemoveCase(ctx context.Context, collectionID, caseID string) bool {
	s.mu.Lock()
	col := s.findLocked(collectionID)
	if col == nil {
		s.mu.Unlock()
		return false
	}
	idx := -1
	for i, id := range col.CaseIDs {
		if id == caseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	col.CaseIDs = append(col.CaseIDs[:idx], col.CaseIDs[idx+1:]...)
	col.UpdatedAt = s.now()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// Get returns a copy of the collection, if known.
func (s *Collections) Get(id string) (*domain.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.findLocked(id)
	if col == nil {
		return nil, false
	}
	return copyCollection(col), true
}

// All returns copies of all collections in creation order.
func (s *Collections) All() []*domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Collection, 0, len(s.items))
	for _, col := range s.items {
		all = append(all, copyCollection(col))
	}
	return all
}

// Cases resolves the collection's member ids through the case cache.
// The second return reports whether the collection exists; member ids with
// no cached record are dropped from the result.
func (s *Collections) Cases(id string) ([]domain.Case, bool) {
	s.mu.RLock()
	col := s.findLocked(id)
	if col == nil {
		s.mu.RUnlock()
		return nil, false
	}
	ids := make([]string, len(col.CaseIDs))
	copy(ids, col.CaseIDs)
	s.mu.RUnlock()

	return s.cache.GetMany(ids), true
}

func (s *Collections) findLocked(id string) *domain.Collection {
	for _, col := range s.items {
		if col.ID == id {
			return col
		}
	}
	return nil
}

func (s *Collections) snapshotLocked() []*domain.Collection {
	snapshot := make([]*domain.Collection, 0, len(s.items))
	for _, col := range s.items {
		snapshot = append(snapshot, copyCollection(col))
	}
	return snapshot
}

func (s *Collections) persist(ctx context.Context, snapshot []*domain.Collection) {
	if err := s.adapter.Set(ctx, storage.KeyCollections, snapshot); err != nil {
		s.log.Warn("failed to persist collections, keeping in-memory state",
			logger.Error(err))
	}
}

func copyCollection(col *domain.Collection) *domain.Collection {
	dup := *col
	dup.CaseIDs = make([]string, len(col.CaseIDs))
	copy(dup.CaseIDs, col.CaseIDs)
	return &dup
}
