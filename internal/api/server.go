// Package api exposes the optional observability HTTP endpoint.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves /healthz and /metrics while a crawl run is in flight.
// It carries no crawl state; the Prometheus default registry holds the
// counters the pipeline increments.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer constructs a Server listening on addr.
func NewServer(addr string, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving in the background.
func (s *Server) Start() {
	s.logger.Info("Metrics endpoint listening", zap.String("addr", s.srv.Addr))
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
