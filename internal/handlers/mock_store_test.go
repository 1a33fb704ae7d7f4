package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shortlinks/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com/very/long/path"

// mockStore is a test double for shortener.Repository that can be configured to return errors.
type mockStore struct {
	putErr    error
	getErr    error
	existsErr error
	taken     bool
}

func (m *mockStore) Put(
	_ context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}

	now := time.Now()

	return &shortener.ShortURL{Code: code, OriginalURL: originalURL, CreatedAt: now, ExpiresAt: now.Add(ttl)}, nil
}

func (m *mockStore) Get(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return &shortener.ShortURL{OriginalURL: testURL}, nil
}

func (m *mockStore) Exists(_ context.Context, _ shortener.Code) (bool, error) {
	return m.taken, m.existsErr
}
