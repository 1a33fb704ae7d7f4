package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// DefaultCodeLength is the number of characters in a generated code.
const DefaultCodeLength = 8

// NewNanoIDGenerator returns a generator of crypto-random codes drawn from
// the URL-safe alphabet A-Za-z0-9_-.
func NewNanoIDGenerator(length int) (CodeGenerator, error) {
	generate, err := nanoid.Standard(length)
	if err != nil {
		return nil, fmt.Errorf("code generator: %w", err)
	}

	return generate, nil
}
