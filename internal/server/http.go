package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MonitorServer exposes health and Prometheus metrics endpoints while a
// transcription run is in progress.
type MonitorServer struct {
	server    *http.Server
	logger    *slog.Logger
	startTime time.Time
}

// MonitorServerConfig contains monitoring server configuration.
type MonitorServerConfig struct {
	Address string
	Port    int
}

// NewMonitorServer creates a new monitoring HTTP server.
func NewMonitorServer(cfg MonitorServerConfig, logger *slog.Logger) *MonitorServer {
	m := &MonitorServer{
		logger:    logger,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", m.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	m.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return m
}

// Start starts the monitoring server in the background.
func (m *MonitorServer) Start() error {
	m.logger.Info("Starting monitoring server",
		slog.String("address", m.server.Addr),
	)

	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("Monitoring server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the monitoring server.
func (m *MonitorServer) Stop(ctx context.Context) error {
	m.logger.Info("Stopping monitoring server...")

	return m.server.Shutdown(ctx)
}

// handleHealth implements the /health endpoint.
func (m *MonitorServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(m.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
