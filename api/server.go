// Package api serves statement parsing over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/zaparse/stmtledger/extractor"
)

// Config holds the API server configuration
type Config struct {
	Port        string
	MaxUploadMB int64
	CORSOrigins []string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:        ":8080",
		MaxUploadMB: 32,
		CORSOrigins: []string{"*"},
	}
}

// Server represents the HTTP API server
type Server struct {
	config    Config
	assembler *extractor.Assembler
	log       zerolog.Logger
	router    chi.Router
	http      *http.Server
}

// New creates a new API server. Parsing is delegated to assembler.
func New(cfg Config, assembler *extractor.Assembler, log zerolog.Logger) *Server {
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = DefaultConfig().MaxUploadMB
	}
	s := &Server{
		config:    cfg,
		assembler: assembler,
		log:       log,
		router:    chi.NewRouter(),
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/banks", s.handleBanks)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/parse", func(r chi.Router) {
		r.Post("/json", s.handleParse)
		r.Post("/batch", s.handleBatch)
	})
}

// Handler returns the http.Handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.config.Port).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a started server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
