package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"budget/internal/ledger"
)

var ErrUnknownOp = errors.New("unknown ledger event op")

// LedgerEventMessage announces that the persisted ledger changed.
// Consumers re-read the slot; the message carries no transaction data.
type LedgerEventMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates a message for ev stamped with the current time
func NewLedgerEventMessage(ev ledger.Event) *LedgerEventMessage {
	return &LedgerEventMessage{
		Op:        ev.Op,
		ID:        ev.ID,
		Count:     ev.Count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON decodes a message and checks its op.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Op {
	case ledger.OpInitialize, ledger.OpAdd, ledger.OpUpdate, ledger.OpDelete:
		return &msg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, msg.Op)
	}
}
