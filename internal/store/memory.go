package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
// Expired records stay in the map until Sweep removes them.
type MemoryStore struct {
	mu   sync.RWMutex
	urls map[shortener.Code]*shortener.ShortURL
	now  func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		urls: make(map[shortener.Code]*shortener.ShortURL),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *MemoryStore) Put(
	_ context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if existing, ok := m.urls[code]; ok && !existing.Expired(now) {
		return nil, shortener.ErrDuplicateKey
	}

	shortURL := &shortener.ShortURL{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	m.urls[code] = shortURL

	return shortURL.Clone(), nil
}

func (m *MemoryStore) Get(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shortURL, ok := m.urls[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	if shortURL.Expired(m.now()) {
		return nil, shortener.ErrExpired
	}

	return shortURL.Clone(), nil
}

func (m *MemoryStore) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shortURL, ok := m.urls[code]

	return ok && !shortURL.Expired(m.now()), nil
}

// Sweep removes records that expired more than retention ago.
func (m *MemoryStore) Sweep(_ context.Context, retention time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-retention)

	var removed int64

	for code, shortURL := range m.urls {
		if shortURL.Expired(cutoff) {
			delete(m.urls, code)

			removed++
		}
	}

	return removed, nil
}

// Len returns the number of records physically held, live or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.urls)
}

// Compile-time check.
var (
	_ shortener.Repository = (*MemoryStore)(nil)
	_ shortener.Sweeper    = (*MemoryStore)(nil)
)
