// Package cli provides the budget subcommands and the initialization they
// share: environment loading, logging, configuration and opening the ledger.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"budget/internal/backend"
	"budget/internal/config"
	"budget/internal/ledger"
	"budget/internal/log"
)

// Command output goes through these so tests can capture it.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetupLogger initializes structured logging at the given level, writing to out.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(level slog.Level, out io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentCLI,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Session is an initialized ledger together with the resources backing it.
type Session struct {
	Config  *config.Config
	Logger  *log.Logger
	Store   *ledger.Store
	Backend *backend.Result
}

// OpenLedger builds the configured backend and initializes a ledger on it.
// The caller must Close the session.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Session, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := ledger.ParseEmptyPolicy(cfg.EmptyPolicy)
	if err != nil {
		return nil, err
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	opts := []ledger.Option{ledger.WithLogger(logger)}
	if res.Notifier != nil {
		opts = append(opts, ledger.WithNotifier(res.Notifier))
	}
	store := ledger.New(res.Adapter, opts...)
	if _, err := store.Initialize(ctx, policy); err != nil {
		_ = res.Close()
		return nil, err
	}

	return &Session{Config: cfg, Logger: logger, Store: store, Backend: res}, nil
}

// Close releases the backend.
func (s *Session) Close() error {
	if err := s.Backend.Close(); err != nil {
		s.Logger.Error("Failed to release backend", log.FieldError, err.Error())
		return err
	}
	return nil
}

// GracefulShutdown returns a context that is cancelled on SIGINT or SIGTERM.
func GracefulShutdown(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		if parent.Err() == nil {
			logger.Info("Shutdown signal received")
		}
	}()
	return ctx, stop
}

// openSession is the common preamble of the ledger commands. Quiet sessions
// only log warnings unless debug logging was asked for, keeping command output
// readable.
func openSession(ctx context.Context, quiet bool) (*Session, error) {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	out := stdout
	if quiet {
		out = stderr
		if level > slog.LevelDebug && level < slog.LevelWarn {
			level = slog.LevelWarn
		}
	}

	return OpenLedger(ctx, cfg, SetupLogger(level, out))
}
