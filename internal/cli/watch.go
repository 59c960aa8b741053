package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/backend"
	"budget/internal/log"
	"budget/internal/worker"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "print the totals every time the ledger changes" }
func (*watchCmd) Usage() string {
	return `budget watch

  Consumes ledger change events from AMQP_URL and prints the refreshed totals
  after each one. Runs until interrupted.
`
}

func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return fail(err)
	}
	if !cfg.AMQPEnabled() {
		fmt.Fprintln(stderr, "Error: AMQP_URL must be set to watch the ledger.")
		return subcommands.ExitUsageError
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fail(err)
	}
	logger := SetupLogger(level, stderr)

	// The watcher only reads, so its backend needs no publisher.
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return fail(err)
	}
	backendCfg.AMQPURL = ""
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fail(err)
	}
	defer res.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return fail(err)
	}
	defer client.Close()

	ctx, stop := GracefulShutdown(ctx, logger)
	defer stop()

	watcher := worker.NewWatcher(res.Adapter, stdout, cfg.Currency, logger)
	if err := watcher.Report(ctx); err != nil {
		return fail(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeLedgerEvents(gctx, watcher.HandleLedgerEvent)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	logger.Info("Watcher stopped", "events", watcher.Handled())
	return subcommands.ExitSuccess
}
