// Package server provides the HTTP API for the resume editor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/backend"
	"github.com/jonathan/resume-editor/internal/cache"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
)

// Store persists documents and preferences per user.
type Store interface {
	GetResume(ctx context.Context, userID uuid.UUID) (*db.StoredResume, error)
	SaveResume(ctx context.Context, userID uuid.UUID, doc resume.Document) (*db.StoredResume, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*db.Preferences, error)
	SavePreferences(ctx context.Context, userID uuid.UUID, prefs db.Preferences) (*db.Preferences, error)
	Ping(ctx context.Context) error
}

// RenderCache stores rendered binaries by format and fingerprint.
// Get returns nil, nil on a miss.
type RenderCache interface {
	Get(ctx context.Context, format, fingerprint string) ([]byte, error)
	Set(ctx context.Context, format, fingerprint string, data []byte) error
}

// PDFRenderer prints an HTML page to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Backend is the external generation and upload service.
type Backend interface {
	Generate(ctx context.Context, req backend.GenerateRequest) (*backend.Response, error)
	Upload(ctx context.Context, req backend.UploadRequest) (*backend.Response, error)
}

// RateLimiter decides whether a client may call an endpoint.
type RateLimiter interface {
	Allow(ctx context.Context, clientID, path, method string) ratelimit.Info
	Stop()
}

// Deps are the collaborators a Server is built from. Store and Tokens are
// required; the others disable their endpoints when nil.
type Deps struct {
	Store   Store
	Tokens  middleware.TokenValidator
	Cache   RenderCache
	PDF     PDFRenderer
	Backend Backend
	Limiter RateLimiter
	Metrics *Metrics
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	cache      RenderCache
	pdf        PDFRenderer
	backend    Backend
	limiter    RateLimiter
	metrics    *Metrics
	validate   *validator.Validate
	verbose    bool
	closers    []func()
}

// Config holds server configuration
type Config struct {
	Port    int
	Verbose bool
}

// New creates a server from already constructed collaborators.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("server requires a token validator")
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}

	s := &Server{
		store:    deps.Store,
		cache:    deps.Cache,
		pdf:      deps.PDF,
		backend:  deps.Backend,
		limiter:  deps.Limiter,
		metrics:  deps.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		verbose:  cfg.Verbose,
	}

	port := cfg.Port
	if port == 0 {
		port = config.DefaultPort
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(deps.Tokens),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Open connects every collaborator named in cfg and builds a server. The
// database is required; Redis, Chrome and the backend are optional.
func Open(ctx context.Context, cfg config.Config, jwtConfig *config.JWTConfig) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closers := []func(){database.Close}

	deps := Deps{
		Store:  database,
		Tokens: NewJWTService(jwtConfig).AsTokenValidator(),
		PDF:    newChromeRenderer(cfg),
	}

	rlConfig := ratelimit.LoadConfig()
	if cfg.RedisURL != "" {
		ttl := cache.DefaultTTL
		if cfg.CacheTTLMinutes > 0 {
			ttl = time.Duration(cfg.CacheTTLMinutes) * time.Minute
		}
		c, err := cache.Connect(ctx, cfg.RedisURL, ttl)
		if err != nil {
			database.Close()
			return nil, err
		}
		closers = append(closers, func() { _ = c.Close() })
		deps.Cache = c
		deps.Limiter = ratelimit.NewRedisLimiter(c.Client(), rlConfig)
		log.Printf("[server] Render cache and shared rate limits enabled")
	} else {
		deps.Limiter = ratelimit.NewLimiter(rlConfig)
	}

	if cfg.BackendURL != "" {
		client, err := backend.NewClient(cfg.BackendURL, cfg.BackendToken, backend.DefaultTimeout)
		if err != nil {
			for _, closeFn := range closers {
				closeFn()
			}
			return nil, err
		}
		deps.Backend = client
	} else {
		log.Printf("[server] BACKEND_URL not set; generate and upload are disabled")
	}

	s, err := New(Config{Port: cfg.Port, Verbose: cfg.Verbose}, deps)
	if err != nil {
		for _, closeFn := range closers {
			closeFn()
		}
		return nil, err
	}
	s.closers = closers
	return s, nil
}

func newChromeRenderer(cfg config.Config) *rendering.ChromePDF {
	r := rendering.NewChromePDF(cfg.ChromePath, cfg.Verbose)
	if cfg.PDFTimeoutSeconds > 0 {
		r.Timeout = time.Duration(cfg.PDFTimeoutSeconds) * time.Second
	}
	return r
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler(tokens middleware.TokenValidator) http.Handler {
	auth := middleware.AuthMiddleware(tokens)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.Handle("GET /resume", protected(s.handleGetResume))
	mux.Handle("PUT /resume", protected(s.handlePutResume))
	mux.Handle("POST /resume/edits", protected(s.handleEdits))
	mux.Handle("GET /resume/export", protected(s.handleExport))
	mux.Handle("POST /resume/import", protected(s.handleImport))
	mux.Handle("GET /resume/lint", protected(s.handleLint))
	mux.Handle("GET /resume/preview", protected(s.handlePreview))
	mux.Handle("GET /resume/pdf", protected(s.handlePDF))
	mux.Handle("POST /resume/generate", protected(s.handleGenerate))
	mux.Handle("POST /resume/upload", protected(s.handleUpload))

	mux.Handle("GET /preferences", protected(s.handleGetPreferences))
	mux.Handle("PUT /preferences", protected(s.handlePutPreferences))

	return s.withMetrics(s.withLogging(s.withCORS(s.withRateLimit(mux))))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] Server error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[server] Stopped")
	return nil
}

// Close releases the rate limiter and any connections opened by Open.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		info := s.limiter.Allow(r.Context(), clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !info.Allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.verbose {
			log.Printf("[server] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		}
		next.ServeHTTP(w, r)
		log.Printf("[server] %s %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports liveness and whether the store answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		log.Printf("[server] Health check failed: %v", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status and writes it. Server-side failures are logged.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.jsonResponse(w, status, errorBody(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
