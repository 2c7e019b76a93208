package ratecache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Veraticus/dealcalc/internal/common"
	"github.com/Veraticus/dealcalc/internal/model"
)

// MemoryCache is an in-process service.RateCache for tests and offline
// use. Sets are stored encoded so callers never share mutable state with
// the cache.
type MemoryCache struct {
	sets map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryCache creates an empty in-memory rate cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		sets: make(map[string][]byte),
	}
}

// GetRateSet returns the cached rate set for a provider, or
// common.ErrNotFound when none is cached.
func (m *MemoryCache) GetRateSet(_ context.Context, providerID string) (*model.RateSet, error) {
	m.mu.RLock()
	data, ok := m.sets[providerID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: rate set %s", common.ErrNotFound, providerID)
	}

	var set model.RateSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode rate set %s: %w", providerID, err)
	}
	return &set, nil
}

// PutRateSet stores a provider's rate set.
func (m *MemoryCache) PutRateSet(_ context.Context, set *model.RateSet) error {
	if set == nil || set.ProviderID == "" {
		return fmt.Errorf("%w: rate set needs a provider id", common.ErrInvalidConfig)
	}

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode rate set: %w", err)
	}

	m.mu.Lock()
	m.sets[set.ProviderID] = data
	m.mu.Unlock()
	return nil
}
