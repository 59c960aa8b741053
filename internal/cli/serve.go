package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	apphttp "budget/internal/http"
	"budget/internal/log"
	"budget/internal/middleware/ratelimit"
)

func writeLimit(perMinute int) ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.RequestsPerMinute = perMinute
	return cfg
}

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over HTTP" }
func (*serveCmd) Usage() string {
	return `budget serve [-port <port>]

  Starts the JSON API. The port defaults to PORT from the environment.
  SIGINT or SIGTERM shut the server down gracefully.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on. Overrides PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx, false)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	port := s.Config.Port
	if c.port != "" {
		port = c.port
	}

	srv := apphttp.NewServer(":"+port, s.Store,
		apphttp.WithLogger(s.Logger),
		apphttp.WithCurrency(s.Config.Currency),
		apphttp.WithTrustedProxies(s.Config.TrustedProxies...),
		apphttp.WithRateLimit(writeLimit(s.Config.WriteRateLimit)))

	ctx, stop := GracefulShutdown(ctx, s.Logger)
	defer stop()

	if err := run(ctx, srv, s); err != nil {
		return fail(err)
	}
	s.Logger.Info("Server stopped gracefully")
	return subcommands.ExitSuccess
}

// run serves until ctx is cancelled or the listener fails, then shuts the
// server down within the configured timeout.
func run(ctx context.Context, srv *apphttp.Server, s *Session) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("Starting budget server",
			"port", srv.Addr,
			log.FieldBackend, s.Config.DataBackend,
			log.FieldCount, s.Store.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error("Server shutdown error", log.FieldError, err.Error())
			return err
		}
		return nil
	})

	return g.Wait()
}
