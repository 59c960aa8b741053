package backend

import (
	"context"
	"errors"
	"fmt"

	"budget/internal/amqp"
	"budget/internal/log"
	"budget/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *Result
		err    error
	)
	switch config.Type {
	case MemoryBackend:
		result = f.createMemoryBackend()
	case FileBackend:
		result, err = f.createFileBackend(config)
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	result.Adapter = storage.NewAdapter(result.Slot, config.SlotKey)
	f.attachNotifier(ctx, config, result)

	f.logger.InfoContext(ctx, "Initialized storage backend",
		log.FieldBackend, config.Type.String(),
		log.FieldSlot, result.Adapter.Key(),
		"amqp_enabled", result.Notifier != nil)

	return result, nil
}

func (f *DefaultFactory) createMemoryBackend() *Result {
	f.logger.Warn("Memory backend selected, the ledger will not survive a restart")
	return &Result{Slot: storage.NewMemorySlot()}
}

func (f *DefaultFactory) createFileBackend(config Config) (*Result, error) {
	slot, err := storage.NewFileSlot(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file slot: %w", err)
	}
	f.logger.Debug("Using file slot", "data_directory", config.DataDirectory)
	return &Result{Slot: slot}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	slot, err := storage.NewSQLiteSlot(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite slot: %w", err)
	}
	f.logger.Debug("Using SQLite slot", "db_path", config.SQLiteDBPath)
	return &Result{Slot: slot, Cleanup: slot.Close}, nil
}

// attachNotifier connects the optional AMQP publisher. A broker that cannot be
// reached only disables change events.
func (f *DefaultFactory) attachNotifier(ctx context.Context, config Config, result *Result) {
	if config.AMQPURL == "" {
		return
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events",
			log.FieldError, err.Error())
		return
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	result.Notifier = client
	storageCleanup := result.Cleanup
	result.Cleanup = func() error {
		var errs []error
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close AMQP client: %w", err))
		}
		if storageCleanup != nil {
			if err := storageCleanup(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
