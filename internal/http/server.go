// Package http serves the tracker's JSON API: record CRUD, the
// filtered and paginated list view, summaries, chart series, and the
// import/export/reset surface.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"outlay/internal/cache"
	"outlay/internal/middleware/security"
	"outlay/internal/middleware/trace"
	"outlay/internal/services"
)

type Server struct {
	http.Server
	tracker *services.Tracker

	rateLimiter *rateLimiter
	tracing     *trace.Middleware

	// viewCache holds serialized GET responses keyed by store version;
	// a mutation bumps the version, so entries age out untouched.
	viewCache    cache.Cache[[]byte]
	cacheCleaner cache.Cleaner

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once

	// now is the reference clock for "this month's spend"; tests pin it.
	now func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, tracker *services.Tracker) *Server {
	mux := http.NewServeMux()

	viewCache := cache.NewLRU[[]byte](100, 5*time.Minute)
	s := &Server{
		tracker:          tracker,
		rateLimiter:      newRateLimiter(),
		tracing:          trace.NewMiddleware(trace.ExtractClientIP),
		viewCache:        viewCache,
		cacheCleaner:     viewCache,
		stopCacheCleanup: make(chan struct{}),
		now:              time.Now,
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/records/update", s.handleUpdateRecord)
	mux.HandleFunc("/api/records/delete", s.handleDeleteRecord)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/charts/categories", s.handleCategoryChart)
	mux.HandleFunc("/api/charts/trend", s.handleTrendChart)
	mux.HandleFunc("/api/months", s.handleMonths)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/import", s.handleImport)
	mux.HandleFunc("/api/reset", s.handleReset)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracing.Middleware(headers.Middleware(s.withRateLimit(mux))),
	}

	return s
}

// withRateLimit throttles mutating requests per client.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.rateLimiter.allow(trace.ExtractClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// startCacheCleanup runs periodic cleanup for the view cache.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cacheCleaner.CleanExpired()
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// handleMetrics reports the request counters the trace middleware keeps.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	m := s.tracing.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_requests":        m.TotalRequests,
		"last_response_time_ms": m.LastResponseTime,
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
