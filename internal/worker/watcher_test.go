package worker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"budget/internal/amqp"
	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/storage"
)

type brokenLoader struct{}

func (brokenLoader) Load(context.Context) ([]core.Transaction, bool, error) {
	return nil, false, errors.New("disk gone")
}

func TestWatcher_HandleLedgerEvent(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(storage.NewMemorySlot(), "")
	store := ledger.New(adapter)
	if _, err := store.Initialize(ctx, ledger.StartEmpty); err != nil {
		t.Fatal(err)
	}
	tx, err := store.Add(ctx, core.Input{Type: core.Income, Category: "Salary", Amount: 1000, Date: core.NewDate(2025, 1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(ctx, core.Input{Type: core.Expense, Category: "Food", Amount: 200, Date: core.NewDate(2025, 1, 2)}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	w := NewWatcher(adapter, &out, "USD", nil)

	msg := amqp.NewLedgerEventMessage(ledger.Event{Op: ledger.OpAdd, ID: tx.ID, Count: 1})
	if err := w.HandleLedgerEvent(ctx, msg); err != nil {
		t.Fatalf("HandleLedgerEvent() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"add " + tx.ID, "income $1,000.00", "expenses $200.00", "balance $800.00", "(2 transactions)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if w.Handled() != 1 {
		t.Errorf("Handled() = %d, want 1", w.Handled())
	}

	out.Reset()
	if err := w.Report(ctx); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "current") || !strings.Contains(out.String(), "balance $800.00") {
		t.Errorf("Report() output = %q", out.String())
	}
}

func TestWatcher_ReloadFailureIsReturned(t *testing.T) {
	var out bytes.Buffer
	w := NewWatcher(brokenLoader{}, &out, "USD", nil)

	msg := &amqp.LedgerEventMessage{Op: ledger.OpDelete, ID: "x", Timestamp: time.Now()}
	if err := w.HandleLedgerEvent(context.Background(), msg); err == nil {
		t.Fatal("expected the reload error so the event is requeued")
	}
	if out.Len() != 0 || w.Handled() != 0 {
		t.Errorf("failed event must not be reported: %q handled=%d", out.String(), w.Handled())
	}
	if err := w.Report(context.Background()); err == nil {
		t.Fatal("Report() should fail when the ledger cannot be loaded")
	}
}
