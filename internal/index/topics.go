// Package index holds the in-memory topic registry backing /browse.
package index

import (
	"sort"
	"sync"
	"time"

	"github.com/caselens/caselens/internal/domain"
)

// TopicIndex provides lookup of browse topics loaded from the topics file.
type TopicIndex struct {
	mu         sync.RWMutex
	topics     map[string]domain.Topic // key -> Topic
	lastReload time.Time
}

// NewTopicIndex creates an empty topic index.
func NewTopicIndex() *TopicIndex {
	return &TopicIndex{
		topics: make(map[string]domain.Topic),
	}
}

// Update replaces all topics in the index.
func (idx *TopicIndex) Update(topics []domain.Topic) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.topics = make(map[string]domain.Topic, len(topics))
	for _, t := range topics {
		idx.topics[t.Key] = t
	}
	idx.lastReload = time.Now()
}

// Get retrieves a topic by key.
func (idx *TopicIndex) Get(key string) (domain.Topic, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	t, ok := idx.topics[key]
	return t, ok
}

// All returns all topics sorted by label.
func (idx *TopicIndex) All() []domain.Topic {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	all := make([]domain.Topic, 0, len(idx.topics))
	for _, t := range idx.topics {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Label < all[j].Label })
	return all
}

// Count returns the number of topics in the index.
func (idx *TopicIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.topics)
}

// LastReload returns the timestamp of the last topics reload.
func (idx *TopicIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
