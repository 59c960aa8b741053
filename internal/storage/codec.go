package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"budget/internal/core"
)

// SchemaVersion is written into every blob so future layouts can be migrated.
const SchemaVersion = 1

type envelope struct {
	Version      int                `json:"version"`
	Transactions []core.Transaction `json:"transactions"`
}

// Encode serializes the full collection in store order.
func Encode(txs []core.Transaction) ([]byte, error) {
	if txs == nil {
		txs = []core.Transaction{}
	}
	b, err := json.Marshal(envelope{Version: SchemaVersion, Transactions: txs})
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return b, nil
}

// Decode parses a blob produced by Encode. A bare JSON array, the layout used
// before the envelope existed, is read as version 1.
func Decode(blob []byte) ([]core.Transaction, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrMalformed)
	}

	if trimmed[0] == '[' {
		var txs []core.Transaction
		if err := json.Unmarshal(trimmed, &txs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return txs, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case env.Version == 0:
		return nil, fmt.Errorf("%w: missing version", ErrMalformed)
	case env.Version > SchemaVersion:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.Transactions, nil
}
