package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	rosterservice "github.com/courtside-club/bracket-bot/app/modules/roster/application"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// Server is the HTTP front of the tournament service.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer assembles the chi router over the bracket and roster
// services and exposes prometheus metrics from the given registry.
func NewServer(
	addr string,
	brackets bracketservice.Service,
	rosters rosterservice.Service,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Server {
	handlers := NewBracketAPIHandlers(brackets, rosters)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(20), 40)))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Mount("/tournaments", BracketRoutes(handlers))
	r.Post("/rosters/import", handlers.ImportRoster)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP API listening", attr.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
