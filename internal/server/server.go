// Package server provides the HTTP API for extracting and rendering expert profiles.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/expert-profile/internal/parsing"
	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/rendering"
	"github.com/jonathan/expert-profile/internal/server/ratelimit"
	"github.com/jonathan/expert-profile/internal/types"
)

// Defaults
const (
	DefaultMaxBodyBytes   = 10 << 20
	DefaultRequestTimeout = 5 * time.Minute
	shutdownTimeout       = 30 * time.Second
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	pipeline       *pipeline.Pipeline
	renderer       *rendering.Renderer
	rateLimiter    *ratelimit.Limiter
	maxBodyBytes   int64
	requestTimeout time.Duration
	handler        http.Handler
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxBodyBytes   int64
	RequestTimeout time.Duration // bounds one parse request, both model calls included
	StaticDir      string        // optional front-end assets served at /
	RateLimit      *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, p *pipeline.Pipeline, renderer *rendering.Renderer) *Server {
	s := &Server{
		pipeline:       p,
		renderer:       renderer,
		maxBodyBytes:   cfg.MaxBodyBytes,
		requestTimeout: cfg.RequestTimeout,
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = DefaultRequestTimeout
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+ratelimit.PathParse, s.handleParse)
	mux.HandleFunc("POST "+ratelimit.PathParseStream, s.handleParseStream)
	mux.HandleFunc("POST "+ratelimit.PathDownload, s.handleDownload)
	mux.HandleFunc("GET "+ratelimit.PathHealth, s.handleHealth)
	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	s.handler = s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(s.withBodyLimit(mux)))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.requestTimeout + 30*time.Second, // Long timeout for model calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("Server starting")
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = s.httpServer.Shutdown(shutdownCtx)

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.jsonResponse(w, r, status, types.ErrorResponse{Error: message})
}

// failure logs err and writes it with the status HTTPStatus assigns.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	event := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(r.Context()).Error()
	}
	var parseErr *parsing.ParseError
	if errors.As(err, &parseErr) {
		// model output may echo resume text
		event = event.Int("raw_chars", len(parseErr.Raw))
	} else {
		event = event.Err(err)
	}
	event.Int("status", status).Msg("Request failed")
	s.errorResponse(w, r, status, ErrorMessage(err))
}
