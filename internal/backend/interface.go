package backend

import (
	"context"

	"budget/internal/ledger"
	"budget/internal/storage"
)

// CleanupFunc releases the resources held by a backend
type CleanupFunc func() error

// Result holds everything the ledger needs from the configured backend
type Result struct {
	Slot    storage.Slot
	Adapter *storage.Adapter
	// Notifier is nil when change events are disabled.
	Notifier ledger.Notifier
	Cleanup  CleanupFunc
}

// Close runs Cleanup when one is set.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Slot name shared by every backend
	SlotKey string

	// File backend specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string

	// Optional change events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
