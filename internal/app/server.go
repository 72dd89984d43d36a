package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsServer exposes the poll and send counters over HTTP.
type MetricsServer struct {
	srv    *http.Server
	logger *zap.Logger
	addr   string
}

// NewMetricsServer creates a server for addr serving /metrics from g and a
// /healthz probe. Nothing listens until Start.
func NewMetricsServer(addr string, g prometheus.Gatherer, logger *zap.Logger) *MetricsServer {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		addr:   addr,
	}
}

// Handler returns the HTTP handler.
func (s *MetricsServer) Handler() http.Handler {
	return s.srv.Handler
}

// Addr returns the address the server listens on, resolved after Start.
func (s *MetricsServer) Addr() string {
	return s.addr
}

// Start binds the listener and serves in the background.
func (s *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	s.addr = ln.Addr().String()
	s.logger.Info("metrics server starting", zap.String("addr", s.addr))

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *MetricsServer) Stop(ctx context.Context) error {
	s.logger.Info("metrics server stopping")
	return s.srv.Shutdown(ctx)
}
