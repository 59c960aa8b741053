package ledger

import (
	"errors"
	"fmt"
	"strings"

	"budget/internal/core"
)

const (
	// SeedOnEmpty fills a ledger with nothing stored with the demonstration dataset.
	SeedOnEmpty EmptyPolicy = "seed"
	// StartEmpty leaves a ledger with nothing stored empty.
	StartEmpty EmptyPolicy = "empty"
)

// EmptyPolicy decides the starting collection when no usable data is stored.
type EmptyPolicy string

var ErrInvalidPolicy = errors.New("invalid empty policy")

// ParseEmptyPolicy accepts seed or empty.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	p := EmptyPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
	return p, nil
}

func (p EmptyPolicy) IsValid() bool {
	return p == SeedOnEmpty || p == StartEmpty
}

func (p EmptyPolicy) initial() []core.Transaction {
	if p == SeedOnEmpty {
		return DemoTransactions()
	}
	return []core.Transaction{}
}
