// Package http exposes the REST surface. Handlers stay thin: parse, call
// the service layer, encode. Owner identity always comes from the verified
// token, never from the request body.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"finsight/internal/auth"
	"finsight/internal/cache"
	"finsight/internal/core"
	applog "finsight/internal/log"
	"finsight/internal/middleware/ratelimit"
	"finsight/internal/middleware/security"
	"finsight/internal/middleware/trace"
	"finsight/internal/services"
)

// Config holds the server wiring.
type Config struct {
	Addr         string
	Tokens       *auth.TokenManager
	Auth         *services.AuthService
	Transactions *services.TransactionService
	Logger       *applog.Logger
	CacheTTL     time.Duration
	CacheMaxSize int
}

type Server struct {
	http.Server

	auth         *services.AuthService
	transactions *services.TransactionService
	tokens       *auth.TokenManager
	logger       *applog.Logger

	// Dashboard responses cached per scope owner, invalidated on writes.
	summaryCache *cache.LRUCache[core.Summary]
	chartCache   *cache.LRUCache[core.Series]
	cacheManager *cache.Manager

	limiter      *ratelimit.Limiter
	detector     *security.Detector
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheMaxSize <= 0 {
		cfg.CacheMaxSize = 256
	}
	if cfg.Logger == nil {
		cfg.Logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		auth:         cfg.Auth,
		transactions: cfg.Transactions,
		tokens:       cfg.Tokens,
		logger:       cfg.Logger.WithComponent(applog.ComponentHTTP),
		summaryCache: cache.NewLRUCache[core.Summary](cfg.CacheMaxSize, cfg.CacheTTL),
		chartCache:   cache.NewLRUCache[core.Series](cfg.CacheMaxSize, cfg.CacheTTL),
		cacheManager: cache.NewManager(),
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:     security.NewDetector(),
	}
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.chartCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.detector.ExtractClientIP)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.suspiciousRequestMiddleware)
	r.Use(headers.Middleware)
	r.Use(tracer.Middleware)
	r.Use(applog.Middleware(s.logger))
	r.Use(applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(auth.Middleware(s.tokens)).Get("/me", s.handleMe)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(auth.Middleware(s.tokens))
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Patch("/{id}", s.handleUpdateTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
			r.Get("/summary", s.handleSummary)
			r.Get("/chart", s.handleChart)
			r.Post("/report", s.handleReport)
		})
	})

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// suspiciousRequestMiddleware logs requests matching known attack patterns.
// They are logged, not blocked; the detector has false positives.
func (s *Server) suspiciousRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.Warn("Suspicious request detected",
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := s.detector.ExtractClientIP(r)
		if !s.limiter.Allow(clientIP) {
			s.logger.Warn("Rate limit exceeded", applog.FieldClientIP, clientIP)
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// invalidateDashboards drops cached summary and chart entries for the scope
// owner the write affected.
func (s *Server) invalidateDashboards(identity string) {
	prefix := core.ScopeOwner(identity) + ":"
	s.summaryCache.DeletePrefix(prefix)
	s.chartCache.DeletePrefix(prefix)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
