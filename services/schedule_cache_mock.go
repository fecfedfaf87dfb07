package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/autoservice/garage-api/models"
)

// MockScheduleCache is an in-memory ScheduleCache for testing
type MockScheduleCache struct {
	entries       map[string][]byte
	generation    int64
	invalidations int
	failing       bool
	mu            sync.RWMutex
}

// NewMockScheduleCache creates an empty mock cache
func NewMockScheduleCache() *MockScheduleCache {
	return &MockScheduleCache{entries: make(map[string][]byte)}
}

// SetAsMockForTesting sets this mock as the global schedule cache
func (m *MockScheduleCache) SetAsMockForTesting() {
	SetScheduleCache(m)
}

// FailWith makes every call return an error, simulating an unreachable server
func (m *MockScheduleCache) FailWith(failing bool) {
	m.mu.Lock()
	m.failing = failing
	m.mu.Unlock()
}

var errMockCacheDown = errors.New("mock schedule cache unavailable")

// Key uses the same generation layout as the Redis cache
func (m *MockScheduleCache) Key(_ context.Context, day string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failing {
		return "", errMockCacheDown
	}
	return scheduleKey(m.generation, day), nil
}

// Get returns a copy of the orders stored under key
func (m *MockScheduleCache) Get(_ context.Context, key string) ([]models.Order, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failing {
		return nil, false, errMockCacheDown
	}
	data, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, false, err
	}
	return orders, true, nil
}

// Set stores the orders under key
func (m *MockScheduleCache) Set(_ context.Context, key string, orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errMockCacheDown
	}
	m.entries[key] = data
	return nil
}

// Invalidate moves to the next generation and drops all entries
func (m *MockScheduleCache) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errMockCacheDown
	}
	m.generation++
	m.entries = make(map[string][]byte)
	m.invalidations++
	return nil
}

// Has reports whether day is cached under the current generation
func (m *MockScheduleCache) Has(day string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[scheduleKey(m.generation, day)]
	return ok
}

// Invalidations returns how many times Invalidate succeeded
func (m *MockScheduleCache) Invalidations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invalidations
}
