// Package storage persists the whole transaction collection as one
// serialized blob held in a named key-value slot.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot name the ledger is stored under.
const DefaultKey = "budget-transactions"

var (
	// ErrNotFound is returned by Slot.Read when nothing was ever written under the key.
	ErrNotFound = errors.New("slot not found")
	// ErrMalformed is returned when a stored blob cannot be decoded.
	ErrMalformed = errors.New("malformed ledger data")
	// ErrUnsupportedVersion is returned for blobs written by a newer schema.
	ErrUnsupportedVersion = errors.New("unsupported ledger schema version")
)

// Slot is a durable key-value cell holding raw bytes. Writes replace the
// previous value as a whole; readers never observe a partial write.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, blob []byte) error
}
