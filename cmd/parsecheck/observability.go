package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ObservabilityServer exposes Prometheus metrics and a liveness endpoint.
type ObservabilityServer struct {
	server *http.Server
}

func NewObservabilityServer(addr string) *ObservabilityServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"up"}`))
	})
	return &ObservabilityServer{
		server: &http.Server{Addr: addr, Handler: mux},
	}
}

func (s *ObservabilityServer) Start() {
	slog.Info("observability server starting", "addr", s.server.Addr)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
