package storage

import (
	"context"
	"errors"
	"fmt"

	"budget/internal/core"
)

// Adapter reads and writes the transaction collection through a Slot.
type Adapter struct {
	slot Slot
	key  string
}

// NewAdapter binds slot under key. An empty key means DefaultKey.
func NewAdapter(slot Slot, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{slot: slot, key: key}
}

// Key returns the slot name the adapter reads and writes.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored collection. found is false when nothing was ever
// stored. Undecodable data yields an error wrapping ErrMalformed or
// ErrUnsupportedVersion.
func (a *Adapter) Load(ctx context.Context) (txs []core.Transaction, found bool, err error) {
	blob, err := a.slot.Read(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %q: %w", a.key, err)
	}
	txs, err = Decode(blob)
	if err != nil {
		return nil, true, err
	}
	return txs, true, nil
}

// Save overwrites the slot with the whole collection.
func (a *Adapter) Save(ctx context.Context, txs []core.Transaction) error {
	blob, err := Encode(txs)
	if err != nil {
		return err
	}
	if err := a.slot.Write(ctx, a.key, blob); err != nil {
		return fmt.Errorf("write slot %q: %w", a.key, err)
	}
	return nil
}
