package shortener

import (
	"context"
	"fmt"
)

// DefaultMaxAttempts bounds how many candidate codes are tried before giving up.
const DefaultMaxAttempts = 5

// CodeGenerator generates candidate short codes.
type CodeGenerator func() string

// Allocator hands out codes that are not live in the repository.
type Allocator struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
}

// NewAllocator creates an allocator. A non-positive maxAttempts falls back to DefaultMaxAttempts.
func NewAllocator(store Repository, generator CodeGenerator, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		store:        store,
		generateCode: generator,
		maxAttempts:  maxAttempts,
	}
}

// Allocate returns a fresh code. It never writes to the repository.
func (a *Allocator) Allocate(ctx context.Context) (Code, error) {
	for range a.maxAttempts {
		code := Code(a.generateCode())

		taken, err := a.store.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code %q: %w", code, err)
		}

		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}
