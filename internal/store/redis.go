package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/shortener"
)

// putScript stores a record unless the key holds a live one.
// KEYS[1] record key; ARGV: url, created_at, expires_at, now (all µs), key ttl (ms).
var putScript = redis.NewScript(`
local expiresAt = redis.call('HGET', KEYS[1], 'expires_at')
if expiresAt and tonumber(expiresAt) >= tonumber(ARGV[4]) then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'original_url', ARGV[1], 'created_at', ARGV[2], 'expires_at', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// RedisStore is a Redis implementation of shortener.Repository.
// Each record is a hash under "url:<code>". Redis evicts the key once the record
// has been expired for longer than retention, so no sweeping is needed.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
	now       func() time.Time
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    "url:",
		retention: retention,
		now:       time.Now,
	}
}

func (r *RedisStore) Put(
	ctx context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	now := r.now().Truncate(time.Microsecond)
	expiresAt := now.Add(ttl)

	stored, err := putScript.Run(ctx, r.client, []string{r.prefix + string(code)},
		originalURL,
		now.UnixMicro(),
		expiresAt.UnixMicro(),
		now.UnixMicro(),
		(ttl + r.retention).Milliseconds(),
	).Int()
	if err != nil {
		return nil, err
	}

	if stored == 0 {
		return nil, shortener.ErrDuplicateKey
	}

	return &shortener.ShortURL{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}, nil
}

func (r *RedisStore) Get(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	shortURL, err := decodeHash(code, result)
	if err != nil {
		return nil, err
	}

	if shortURL.Expired(r.now()) {
		return nil, shortener.ErrExpired
	}

	return shortURL, nil
}

func (r *RedisStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	return existsVia(ctx, r, code)
}

// decodeHash turns a record hash into a ShortURL. An empty hash means the key is absent.
func decodeHash(code shortener.Code, fields map[string]string) (*shortener.ShortURL, error) {
	if len(fields) == 0 {
		return nil, shortener.ErrNotFound
	}

	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, err
	}

	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, err
	}

	return &shortener.ShortURL{
		Code:        code,
		OriginalURL: fields["original_url"],
		CreatedAt:   time.UnixMicro(createdAt),
		ExpiresAt:   time.UnixMicro(expiresAt),
	}, nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
