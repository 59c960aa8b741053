// Package worker holds the background consumers of ledger change events.
package worker

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"budget/internal/aggregate"
	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/log"
)

// Loader re-reads the persisted collection. *storage.Adapter implements it.
type Loader interface {
	Load(ctx context.Context) ([]core.Transaction, bool, error)
}

// Watcher reloads the ledger after every change event and reports the new totals.
type Watcher struct {
	loader   Loader
	out      io.Writer
	currency string
	logger   *log.Logger
	handled  atomic.Int64
}

func NewWatcher(loader Loader, out io.Writer, currency string, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Discard()
	}
	return &Watcher{
		loader:   loader,
		out:      out,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// HandleLedgerEvent processes a single ledger change message from AMQP.
// A failed reload is returned so the message is requeued.
func (w *Watcher) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	w.logger.DebugContext(ctx, "Processing ledger event",
		log.FieldOperation, msg.Op,
		log.FieldTransactionID, msg.ID,
		log.FieldCount, msg.Count)

	txs, _, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}
	if len(txs) != msg.Count {
		// Another change landed between the event and the reload.
		w.logger.DebugContext(ctx, "Ledger moved on since the event",
			"event_count", msg.Count,
			log.FieldCount, len(txs))
	}

	w.report(msg, aggregate.Summarize(txs), len(txs))
	w.handled.Add(1)
	return nil
}

// Report prints the current totals without waiting for an event.
func (w *Watcher) Report(ctx context.Context) error {
	txs, _, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	t := aggregate.Summarize(txs)
	fmt.Fprintf(w.out, "current  income %s  expenses %s  balance %s  (%d transactions)\n",
		core.FormatAmount(t.Income, w.currency),
		core.FormatAmount(t.Expenses, w.currency),
		core.FormatAmount(t.Balance, w.currency),
		len(txs))
	return nil
}

// Handled returns the number of events processed successfully.
func (w *Watcher) Handled() int64 {
	return w.handled.Load()
}

func (w *Watcher) report(msg *amqp.LedgerEventMessage, t core.Totals, count int) {
	what := msg.Op
	if msg.ID != "" {
		what += " " + msg.ID
	}
	fmt.Fprintf(w.out, "%s %-44s income %s  expenses %s  balance %s  (%d transactions)\n",
		msg.Timestamp.Local().Format("15:04:05"), what,
		core.FormatAmount(t.Income, w.currency),
		core.FormatAmount(t.Expenses, w.currency),
		core.FormatAmount(t.Balance, w.currency),
		count)
}
