package store

import (
	"context"
	"errors"

	"github.com/serroba/shortlinks/internal/shortener"
)

type getter interface {
	Get(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error)
}

// existsVia derives a live-key check from Get.
func existsVia(ctx context.Context, g getter, code shortener.Code) (bool, error) {
	_, err := g.Get(ctx, code)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, shortener.ErrNotFound), errors.Is(err, shortener.ErrExpired):
		return false, nil
	default:
		return false, err
	}
}
