package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/log"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
)

// Server exposes the ledger as a JSON API.
type Server struct {
	http.Server

	store     *ledger.Store
	logger    *log.Logger
	currency  string
	startedAt time.Time

	tracer    *trace.Middleware
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	rateLimit ratelimit.Config
	proxies   []string

	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base logger; requests log through a child carrying the request ID.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l.WithComponent(log.ComponentHTTP) }
}

// WithCurrency sets the currency used for formatted amounts.
func WithCurrency(code string) Option {
	return func(s *Server) { s.currency = code }
}

// WithRateLimit replaces the default write rate limit.
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(s *Server) { s.rateLimit = cfg }
}

// WithTrustedProxies trusts forwarding headers from the given CIDR networks in
// addition to loopback and private ones.
func WithTrustedProxies(cidrs ...string) Option {
	return func(s *Server) { s.proxies = append(s.proxies, cidrs...) }
}

// NewServer builds a server for store listening on addr. store must be initialized.
func NewServer(addr string, store *ledger.Store, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    log.Discard(),
		currency:  core.DefaultCurrency,
		startedAt: time.Now(),
		detector:  security.NewDetector(),
		rateLimit: ratelimit.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, cidr := range s.proxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			s.logger.Warn("Ignoring trusted proxy", log.FieldError, err.Error())
		}
	}

	s.tracer = trace.NewMiddleware(s.logger, s.detector.ExtractClientIP)
	s.limiter = ratelimit.NewLimiter(s.rateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/categories", s.handleCategoryBreakdown)
	mux.HandleFunc("GET /api/categories/vocabulary", s.handleCategoryVocabulary)

	onLimit := func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.detector.ExtractClientIP(r),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		TooManyRequestsError("rate limit exceeded, try again later").Write(w)
	}

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, onLimit)(handler)
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops background work and gracefully shuts the listener down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(s.limiter.Stop)
	return s.Server.Shutdown(ctx)
}
