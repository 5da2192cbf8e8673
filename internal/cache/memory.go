package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"referral-server/internal/store"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a per-process listing cache.
type Memory struct {
	generation atomic.Uint64
	entries    *gocache.Cache
}

// NewMemory creates a memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: gocache.New(ttl, 2*ttl),
	}
}

func (m *Memory) Generation(_ context.Context) (uint64, error) {
	return m.generation.Load(), nil
}

func (m *Memory) GetPage(_ context.Context, generation uint64, key PageKey) ([]store.Referral, bool, error) {
	v, ok := m.entries.Get(entryKey(generation, key.String()))
	if !ok {
		return nil, false, nil
	}
	referrals := v.([]store.Referral)
	return append([]store.Referral(nil), referrals...), true, nil
}

func (m *Memory) SetPage(_ context.Context, generation uint64, key PageKey, referrals []store.Referral) error {
	if generation != m.generation.Load() {
		return nil
	}
	m.entries.SetDefault(entryKey(generation, key.String()), append([]store.Referral{}, referrals...))
	return nil
}

func (m *Memory) GetCount(_ context.Context, generation uint64, search string) (int, bool, error) {
	v, ok := m.entries.Get(entryKey(generation, countKey(search)))
	if !ok {
		return 0, false, nil
	}
	return v.(int), true, nil
}

func (m *Memory) SetCount(_ context.Context, generation uint64, search string, count int) error {
	if generation != m.generation.Load() {
		return nil
	}
	m.entries.SetDefault(entryKey(generation, countKey(search)), count)
	return nil
}

// Invalidate starts a new generation and drops every stored entry.
func (m *Memory) Invalidate(_ context.Context) error {
	m.generation.Add(1)
	m.entries.Flush()
	return nil
}

func entryKey(generation uint64, key string) string {
	return fmt.Sprintf("%d:%s", generation, key)
}
