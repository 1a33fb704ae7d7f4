package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlinks/internal/shortener"
)

const schema = `
	CREATE TABLE IF NOT EXISTS short_urls (
		code         TEXT PRIMARY KEY,
		original_url TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		expires_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS short_urls_expires_at_idx ON short_urls (expires_at);
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore creates a new PostgreSQL-backed URL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		now:  time.Now,
	}
}

// Migrate creates the short_urls table if it does not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

// Put inserts the record, replacing a row under the same code only when that row has expired.
func (p *PostgresStore) Put(
	ctx context.Context, code shortener.Code, originalURL string, ttl time.Duration,
) (*shortener.ShortURL, error) {
	query := `
		INSERT INTO short_urls (code, original_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE
			SET original_url = EXCLUDED.original_url,
			    created_at   = EXCLUDED.created_at,
			    expires_at   = EXCLUDED.expires_at
			WHERE short_urls.expires_at < EXCLUDED.created_at
	`

	now := p.now().UTC().Truncate(time.Microsecond)
	shortURL := &shortener.ShortURL{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	tag, err := p.pool.Exec(ctx, query,
		string(shortURL.Code),
		shortURL.OriginalURL,
		shortURL.CreatedAt,
		shortURL.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		return nil, shortener.ErrDuplicateKey
	}

	return shortURL, nil
}

func (p *PostgresStore) Get(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT code, original_url, created_at, expires_at
		FROM short_urls
		WHERE code = $1
	`

	var (
		shortURL shortener.ShortURL
		rawCode  string
	)

	err := p.pool.QueryRow(ctx, query, string(code)).Scan(
		&rawCode,
		&shortURL.OriginalURL,
		&shortURL.CreatedAt,
		&shortURL.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	shortURL.Code = shortener.Code(rawCode)

	if shortURL.Expired(p.now()) {
		return nil, shortener.ErrExpired
	}

	return &shortURL, nil
}

func (p *PostgresStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	return existsVia(ctx, p, code)
}

// Sweep deletes rows that expired more than retention ago.
func (p *PostgresStore) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM short_urls WHERE expires_at < $1`,
		p.now().UTC().Add(-retention),
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Compile-time check.
var (
	_ shortener.Repository = (*PostgresStore)(nil)
	_ shortener.Sweeper    = (*PostgresStore)(nil)
)
