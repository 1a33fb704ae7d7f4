package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
// Cached entries live for at most ttl and never past the record's expiry.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "url-cache:",
		ttl:    ttl,
		now:    time.Now,
	}
}

// Put stores a short URL in the underlying store and updates the cache.
func (r *RedisCacheRepository) Put(
	ctx context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	shortURL, err := r.store.Put(ctx, code, originalURL, ttl)
	if err != nil {
		return nil, err
	}

	// Write-through: update cache after successful save
	r.cacheURL(ctx, shortURL)

	return shortURL, nil
}

// Get retrieves a short URL by its code, checking cache first.
func (r *RedisCacheRepository) Get(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	if shortURL, err := r.getFromCache(ctx, code); err == nil && !shortURL.Expired(r.now()) {
		return shortURL, nil
	}

	shortURL, err := r.store.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheURL(ctx, shortURL)

	return shortURL, nil
}

func (r *RedisCacheRepository) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	return existsVia(ctx, r, code)
}

// Sweep delegates to the underlying store when it supports sweeping.
func (r *RedisCacheRepository) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	sweeper, ok := r.store.(shortener.Sweeper)
	if !ok {
		return 0, nil
	}

	return sweeper.Sweep(ctx, retention)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	return decodeHash(code, result)
}

func (r *RedisCacheRepository) cacheURL(ctx context.Context, shortURL *shortener.ShortURL) {
	lifetime := min(r.ttl, shortURL.ExpiresAt.Sub(r.now()))
	if lifetime <= 0 {
		return
	}

	key := r.prefix + string(shortURL.Code)
	pipe := r.client.Pipeline()

	pipe.HSet(ctx, key, map[string]any{
		"original_url": shortURL.OriginalURL,
		"created_at":   strconv.FormatInt(shortURL.CreatedAt.UnixMicro(), 10),
		"expires_at":   strconv.FormatInt(shortURL.ExpiresAt.UnixMicro(), 10),
	})
	pipe.PExpire(ctx, key, lifetime)

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var (
	_ shortener.Repository = (*RedisCacheRepository)(nil)
	_ shortener.Sweeper    = (*RedisCacheRepository)(nil)
)
