package shortener_test

import (
	"context"
	"testing"

	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_Allocate(t *testing.T) {
	t.Run("returns the first free code", func(t *testing.T) {
		repo := newMockRepository()
		allocator := shortener.NewAllocator(repo, sequence("free1"), 5)

		code, err := allocator.Allocate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("free1"), code)
		assert.Len(t, repo.checked, 1)
	})

	t.Run("regenerates on collision", func(t *testing.T) {
		repo := newMockRepository("taken1", "taken2")
		allocator := shortener.NewAllocator(repo, sequence("taken1", "taken2", "free1"), 5)

		code, err := allocator.Allocate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("free1"), code)
		assert.Equal(t, []shortener.Code{"taken1", "taken2", "free1"}, repo.checked)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		repo := newMockRepository("taken")
		allocator := shortener.NewAllocator(repo, sequence("taken"), 3)

		code, err := allocator.Allocate(context.Background())

		require.ErrorIs(t, err, shortener.ErrAllocationExhausted)
		assert.Empty(t, code)
		assert.Len(t, repo.checked, 3)
	})

	t.Run("non-positive max attempts uses default", func(t *testing.T) {
		repo := newMockRepository("taken")
		allocator := shortener.NewAllocator(repo, sequence("taken"), 0)

		_, err := allocator.Allocate(context.Background())

		require.ErrorIs(t, err, shortener.ErrAllocationExhausted)
		assert.Len(t, repo.checked, shortener.DefaultMaxAttempts)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := newMockRepository()
		repo.existsErr = errMock
		allocator := shortener.NewAllocator(repo, sequence("code1"), 5)

		_, err := allocator.Allocate(context.Background())

		require.ErrorIs(t, err, errMock)
		assert.Len(t, repo.checked, 1)
	})

	t.Run("never writes to the store", func(t *testing.T) {
		repo := newMockRepository("taken")
		allocator := shortener.NewAllocator(repo, sequence("taken", "free"), 5)

		_, err := allocator.Allocate(context.Background())

		require.NoError(t, err)
		assert.Zero(t, repo.puts)
	})
}
