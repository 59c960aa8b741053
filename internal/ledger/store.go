// Package ledger owns the canonical, ordered collection of transactions.
//
// A Store is constructed once, initialized from persistent storage, and then
// passed to every collaborator that reads or changes the ledger. Each
// mutation rewrites the whole persisted collection before it returns, so the
// next read, in memory or from storage, observes it.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"budget/internal/aggregate"
	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/storage"
)

// maxIDAttempts bounds retries when a generated id is already taken.
const maxIDAttempts = 8

var (
	// ErrNotInitialized is the panic value raised when a Store is used before Initialize.
	ErrNotInitialized = errors.New("ledger store used before Initialize")
	// ErrIDExhausted is returned when the id generator keeps producing taken ids.
	ErrIDExhausted = errors.New("could not generate a unique transaction id")
)

// Persister loads and saves the whole collection. *storage.Adapter implements it.
type Persister interface {
	Load(ctx context.Context) ([]core.Transaction, bool, error)
	Save(ctx context.Context, txs []core.Transaction) error
}

// Store is the single owner of the ledger for the lifetime of a process.
type Store struct {
	persist  Persister
	notifier Notifier
	logger   *log.Logger
	newID    func() string

	mu    sync.RWMutex
	items []core.Transaction
	ready bool
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier registers n to be told about every persisted change.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger used for ledger events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentLedger) }
}

// New creates a store persisting through p. The store is unusable until
// Initialize succeeds.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persist: p,
		logger:  log.Discard(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. When nothing is stored, the
// stored collection is empty, or it cannot be decoded, policy decides the
// starting collection. Invalid stored entries are dropped, and a non-empty
// stored collection is otherwise used as-is. The
// resulting collection is written back before Initialize returns.
func (s *Store) Initialize(ctx context.Context, policy EmptyPolicy) ([]core.Transaction, error) {
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, string(policy))
	}

	txs, found, err := s.persist.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrMalformed), errors.Is(err, storage.ErrUnsupportedVersion):
		s.logger.WarnContext(ctx, "Stored ledger unreadable, treating as absent",
			log.FieldError, err.Error(),
			log.FieldPolicy, string(policy))
		txs, found = nil, false
	case err != nil:
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	txs = s.dropInvalid(ctx, txs)
	if len(txs) == 0 {
		txs = policy.initial()
		s.logger.InfoContext(ctx, "Ledger starting from empty policy",
			log.FieldPolicy, string(policy),
			"stored", found,
			log.FieldCount, len(txs))
	} else {
		txs = s.repairIDs(ctx, txs)
	}

	if err := s.persist.Save(ctx, txs); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}

	s.mu.Lock()
	s.items = txs
	s.ready = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Ledger initialized", log.FieldCount, len(txs))
	s.notify(ctx, Event{Op: OpInitialize, Count: len(txs)})
	return slices.Clone(txs), nil
}

// Add assigns a fresh id to in, places the new transaction at the front of
// the collection and persists it.
func (s *Store) Add(ctx context.Context, in core.Input) (core.Transaction, error) {
	var created core.Transaction
	count, err := s.apply(ctx, func(cur []core.Transaction) ([]core.Transaction, bool, error) {
		if err := in.Validate(); err != nil {
			return nil, false, err
		}
		id, err := s.uniqueID(cur)
		if err != nil {
			return nil, false, err
		}
		created = in.WithID(id)
		next := make([]core.Transaction, 0, len(cur)+1)
		next = append(next, created)
		next = append(next, cur...)
		return next, true, nil
	})
	if err != nil {
		return core.Transaction{}, err
	}

	s.logMutation(ctx, log.OpCreate, created)
	s.notify(ctx, Event{Op: OpAdd, ID: created.ID, Count: count})
	return created, nil
}

// Update replaces every field except the id of the transaction identified by
// id, keeping its position. An unknown id is silently ignored.
func (s *Store) Update(ctx context.Context, id string, in core.Input) error {
	var updated core.Transaction
	changed := false
	count, err := s.apply(ctx, func(cur []core.Transaction) ([]core.Transaction, bool, error) {
		if err := in.Validate(); err != nil {
			return nil, false, err
		}
		i := indexOf(cur, id)
		if i < 0 {
			return nil, false, nil
		}
		updated = in.WithID(id)
		next := slices.Clone(cur)
		next[i] = updated
		changed = true
		return next, true, nil
	})
	if err != nil || !changed {
		return err
	}

	s.logMutation(ctx, log.OpUpdate, updated)
	s.notify(ctx, Event{Op: OpUpdate, ID: id, Count: count})
	return nil
}

// Delete removes the transaction identified by id. An unknown id is silently ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	var removed core.Transaction
	changed := false
	count, err := s.apply(ctx, func(cur []core.Transaction) ([]core.Transaction, bool, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, false, nil
		}
		removed = cur[i]
		changed = true
		return slices.Delete(slices.Clone(cur), i, i+1), true, nil
	})
	if err != nil || !changed {
		return err
	}

	s.logMutation(ctx, log.OpDelete, removed)
	s.notify(ctx, Event{Op: OpDelete, ID: id, Count: count})
	return nil
}

// Snapshot returns a copy of the collection in store order.
func (s *Store) Snapshot() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeReady()
	return slices.Clone(s.items)
}

// Get returns the transaction identified by id.
func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeReady()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return core.Transaction{}, false
}

// Totals recomputes income, expenses and balance from the current collection.
func (s *Store) Totals() core.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeReady()
	return aggregate.Summarize(s.items)
}

// Ready reports whether Initialize has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Len returns the number of transactions in the ledger.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeReady()
	return len(s.items)
}

// apply runs fn against the current collection under the write lock. When fn
// reports a change, the returned collection is persisted and only then
// becomes canonical; a failed write leaves the store untouched.
func (s *Store) apply(ctx context.Context, fn func(cur []core.Transaction) ([]core.Transaction, bool, error)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeReady()

	next, changed, err := fn(s.items)
	if err != nil {
		return len(s.items), err
	}
	if !changed {
		return len(s.items), nil
	}
	if err := s.persist.Save(ctx, next); err != nil {
		return len(s.items), fmt.Errorf("persist ledger: %w", err)
	}
	s.items = next
	return len(next), nil
}

func (s *Store) mustBeReady() {
	if !s.ready {
		panic(ErrNotInitialized)
	}
}

func (s *Store) uniqueID(cur []core.Transaction) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && indexOf(cur, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// dropInvalid removes stored entries that would break the ledger invariants,
// such as a negative amount or an unknown type. The cleaned collection is
// persisted by Initialize.
func (s *Store) dropInvalid(ctx context.Context, txs []core.Transaction) []core.Transaction {
	return slices.DeleteFunc(txs, func(tx core.Transaction) bool {
		err := tx.Input().Validate()
		if err != nil {
			s.logger.WarnContext(ctx, "Stored transaction is invalid, dropped",
				log.FieldTransactionID, tx.ID,
				log.FieldError, err.Error())
		}
		return err != nil
	})
}

// repairIDs gives a fresh id to stored entries whose id is empty or repeats
// an earlier one, so ids stay unique across the live collection.
func (s *Store) repairIDs(ctx context.Context, txs []core.Transaction) []core.Transaction {
	seen := make(map[string]struct{}, len(txs))
	for i := range txs {
		id := txs[i].ID
		if _, dup := seen[id]; id != "" && !dup {
			seen[id] = struct{}{}
			continue
		}
		fresh := uuid.NewString()
		s.logger.WarnContext(ctx, "Stored transaction had a missing or duplicate id, reassigned",
			log.FieldTransactionID, id,
			"new_id", fresh)
		txs[i].ID = fresh
		seen[fresh] = struct{}{}
	}
	return txs
}

func (s *Store) logMutation(ctx context.Context, op string, tx core.Transaction) {
	log.NewStructuredLogger(s.logger).LogTransaction(ctx, op, tx.ID, tx.Type.String(), tx.Category, tx.Amount)
}

func (s *Store) notify(ctx context.Context, ev Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyLedgerChanged(ctx, ev); err != nil {
		// The change is already persisted; a lost notification only delays readers.
		s.logger.WarnContext(ctx, "Failed to publish ledger change",
			log.FieldOperation, ev.Op,
			log.FieldTransactionID, ev.ID,
			log.FieldError, err.Error())
	}
}

func indexOf(txs []core.Transaction, id string) int {
	return slices.IndexFunc(txs, func(tx core.Transaction) bool { return tx.ID == id })
}
