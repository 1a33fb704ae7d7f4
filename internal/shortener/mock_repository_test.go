package shortener_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
)

var errMock = errors.New("mock error")

// mockRepository is a test double for shortener.Repository that records calls.
type mockRepository struct {
	mu        sync.Mutex
	taken     map[shortener.Code]bool
	existsErr error
	putErr    error
	puts      int
	checked   []shortener.Code
}

func newMockRepository(taken ...shortener.Code) *mockRepository {
	m := &mockRepository{taken: make(map[shortener.Code]bool)}
	for _, code := range taken {
		m.taken[code] = true
	}

	return m
}

func (m *mockRepository) Put(
	_ context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++

	if m.putErr != nil {
		return nil, m.putErr
	}

	now := time.Now()

	return &shortener.ShortURL{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}, nil
}

func (m *mockRepository) Get(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	return nil, shortener.ErrNotFound
}

func (m *mockRepository) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checked = append(m.checked, code)

	if m.existsErr != nil {
		return false, m.existsErr
	}

	return m.taken[code], nil
}

// sequence returns a generator that yields codes in order, repeating the last one.
func sequence(codes ...string) shortener.CodeGenerator {
	var (
		mu sync.Mutex
		i  int
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}
