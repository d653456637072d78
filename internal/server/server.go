// Package server provides the HTTP REST API for the CV wizard.
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

	"github.com/Ragbaje/FrameMe/internal/export"
	"github.com/Ragbaje/FrameMe/internal/rendering"
	"github.com/Ragbaje/FrameMe/internal/rewriting"
	"github.com/Ragbaje/FrameMe/internal/server/ratelimit"
	"github.com/Ragbaje/FrameMe/internal/session"
)

// rewriteService is the slice of the rewriter the handlers need.
type rewriteService interface {
	RewriteBullets(ctx context.Context, notes string) ([]string, error)
	RewriteProfile(ctx context.Context, text string) (string, error)
	SuggestSkills(ctx context.Context, description string) ([]string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	store          *session.Store
	rewriter       rewriteService
	closeRewriter  func() error
	exporter       *export.Exporter
	rateLimiter    *ratelimit.Limiter
	defaultVariant rendering.Variant
}

// Config holds server configuration
type Config struct {
	Port            int
	APIKey          string
	ChromePath      string
	SessionTTL      time.Duration
	DefaultTemplate string
}

// New creates a new server instance. Rewriting endpoints stay up but
// answer 503 when no API key is configured.
func New(cfg Config) (*Server, error) {
	variant := rendering.VariantModern
	if cfg.DefaultTemplate != "" {
		v, err := rendering.ParseVariant(cfg.DefaultTemplate)
		if err != nil {
			return nil, err
		}
		variant = v
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}

	s := &Server{
		exporter:       export.NewExporter(cfg.ChromePath),
		defaultVariant: variant,
	}

	if cfg.APIKey != "" {
		rw, err := rewriting.New(context.Background(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create rewriter: %w", err)
		}
		s.rewriter = rw
		s.closeRewriter = rw.Close
	}

	s.store = session.NewStore(ttl)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export holds the connection while Chrome prints
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Session lifecycle
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	// Wizard navigation
	mux.HandleFunc("POST /sessions/{id}/advance", s.handleAdvance)
	mux.HandleFunc("POST /sessions/{id}/retreat", s.handleRetreat)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)

	// Record panels
	mux.HandleFunc("PUT /sessions/{id}/personal", s.handleUpdatePersonal)
	mux.HandleFunc("PUT /sessions/{id}/profile", s.handleUpdateProfile)
	mux.HandleFunc("POST /sessions/{id}/education", s.handleAddEducation)
	mux.HandleFunc("PUT /sessions/{id}/education/{entry_id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /sessions/{id}/education/{entry_id}", s.handleDeleteEducation)
	mux.HandleFunc("POST /sessions/{id}/experience", s.handleAddExperience)
	mux.HandleFunc("PUT /sessions/{id}/experience/{entry_id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /sessions/{id}/experience/{entry_id}", s.handleDeleteExperience)
	mux.HandleFunc("POST /sessions/{id}/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /sessions/{id}/skills/{skill}", s.handleDeleteSkill)

	// AI rewriting
	mux.HandleFunc("POST /sessions/{id}/profile/rewrite", s.handleRewriteProfile)
	mux.HandleFunc("POST /sessions/{id}/experience/{entry_id}/rewrite", s.handleRewriteExperience)
	mux.HandleFunc("POST /sessions/{id}/skills/suggest", s.handleSuggestSkills)

	// Preview and export
	mux.HandleFunc("GET /sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("POST /sessions/{id}/export", s.handleExport)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeRewriter != nil {
		if err := s.closeRewriter(); err != nil {
			log.Printf("Error closing rewriter: %v", err)
		}
	}
	s.store.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
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

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status and the active session count
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFor maps a typed error to its HTTP response.
func (s *Server) errorFor(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
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
