package shortener

import (
	"context"
	"time"
)

// DefaultTTL is how long a short URL stays resolvable.
const DefaultTTL = 30 * time.Minute

// Service implements Shorten and Resolve on top of an allocator and a repository.
type Service struct {
	store     Repository
	allocator *Allocator
	ttl       time.Duration
}

// NewService creates a shortening service. A non-positive ttl falls back to DefaultTTL.
func NewService(store Repository, allocator *Allocator, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		store:     store,
		allocator: allocator,
		ttl:       ttl,
	}
}

// TTL returns the lifetime given to new short URLs.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Shorten validates rawURL, allocates a code and stores the record.
// Invalid input is rejected before any code is allocated.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*ShortURL, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	code, err := s.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	return s.store.Put(ctx, code, rawURL, s.ttl)
}

// Resolve returns the destination of a live code.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	shortURL, err := s.store.Get(ctx, code)
	if err != nil {
		return "", err
	}

	return shortURL.OriginalURL, nil
}
