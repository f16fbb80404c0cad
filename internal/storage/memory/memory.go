// Package memory provides an in-process storage.Adapter.
// It backs tests and the "memory" storage backend (state lost on restart).
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Adapter stores JSON-encoded values in a mutex-guarded map.
type Adapter struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty in-memory adapter.
func New() *Adapter {
	return &Adapter{values: make(map[string][]byte)}
}

func (a *Adapter) Get(_ context.Context, key string, dest any) (bool, error) {
	a.mu.RLock()
	data, ok := a.values[key]
	a.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode value for %s: %w", key, err)
	}
	return true, nil
}

func (a *Adapter) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	a.mu.Lock()
	a.values[key] = data
	a.mu.Unlock()
	return nil
}

func (a *Adapter) Remove(_ context.Context, key string) error {
	a.mu.Lock()
	delete(a.values, key)
	a.mu.Unlock()
	return nil
}

// Len returns the number of stored keys. Test helper.
func (a *Adapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.values)
}
