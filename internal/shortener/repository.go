package shortener

import (
	"context"
	"time"
)

// Repository is the expiring key-value store that owns all short URL records.
type Repository interface {
	// Put stores a new record expiring ttl from now. It returns ErrDuplicateKey
	// if code is currently live; an expired record under the same code is replaced.
	Put(ctx context.Context, code Code, originalURL string, ttl time.Duration) (*ShortURL, error)

	// Get returns a copy of the record, ErrNotFound if absent or ErrExpired if past its expiry.
	Get(ctx context.Context, code Code) (*ShortURL, error)

	// Exists reports whether code is a live key.
	Exists(ctx context.Context, code Code) (bool, error)
}

// Sweeper is implemented by repositories that need expired records reclaimed
// explicitly. Records expired for longer than retention are removed.
type Sweeper interface {
	Sweep(ctx context.Context, retention time.Duration) (int64, error)
}
