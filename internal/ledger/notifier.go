package ledger

import "context"

// Operations reported in an Event.
const (
	OpInitialize = "initialize"
	OpAdd        = "add"
	OpUpdate     = "update"
	OpDelete     = "delete"
)

// Event describes a change that has already been persisted.
type Event struct {
	Op string
	// ID is empty for OpInitialize.
	ID string
	// Count is the number of transactions after the change.
	Count int
}

// Notifier is told about every persisted change. Errors are logged by the
// store and never undo the change.
type Notifier interface {
	NotifyLedgerChanged(ctx context.Context, ev Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, ev Event) error

func (f NotifierFunc) NotifyLedgerChanged(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
