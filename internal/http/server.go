// Package http exposes the ledger as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/format"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type Server struct {
	http.Server
	tracker   *services.Tracker
	formatter *format.Formatter
	logger    *applog.Logger
	now       func() time.Time

	tracer       *trace.Middleware
	rateLimiter  *ratelimit.Limiter
	summaryCache *cache.LRU[summaryKey, summaryResponse]

	shutdownOnce sync.Once
}

type Option func(*Server)

// WithClock overrides the time source used for "today" and the current period.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRateLimit sets the per-client limit for mutating requests.
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(s *Server) { s.rateLimiter = ratelimit.NewLimiter(cfg) }
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, tracker *services.Tracker, formatter *format.Formatter, opts ...Option) *Server {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		tracker:      tracker,
		formatter:    formatter,
		now:          time.Now,
		summaryCache: cache.NewLRU[summaryKey, summaryResponse](64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = applog.Wrap(nil, applog.ComponentHTTP)
	}
	s.logger = s.logger.WithComponent(applog.ComponentHTTP)
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.DefaultConfig())
	}
	s.tracer = trace.NewMiddleware(s.logger, extractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /budgets", s.handleListBudgets)
	mux.HandleFunc("POST /budgets", s.handleCreateBudget)
	mux.HandleFunc("DELETE /budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /budgets/categories", s.handleUnbudgetedCategories)

	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /series", s.handleSeries)
	mux.HandleFunc("GET /periods", s.handlePeriods)
	mux.HandleFunc("GET /categories", s.handleCategories)

	var h http.Handler = mux
	h = applog.RequestIDMiddleware(trace.GetRequestID)(h)
	h = applog.Middleware(s.logger)(h)
	h = s.rateLimiter.Middleware(extractClientIP, handleRateLimited)(h)
	h = s.tracer.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	s.Handler = h

	return s
}

// metricsResponse is the body of GET /metrics.
type metricsResponse struct {
	Requests     trace.Metrics     `json:"requests"`
	RateLimit    ratelimit.Metrics `json:"rate_limit"`
	SummaryCache cache.Stats       `json:"summary_cache"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metricsResponse{
		Requests:     s.tracer.GetMetrics(),
		RateLimit:    s.rateLimiter.GetMetrics(),
		SummaryCache: s.summaryCache.Stats(),
	})
}

// Shutdown stops the rate limiter and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}
