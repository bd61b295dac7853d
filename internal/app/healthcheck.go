package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/grid"
)

// statsTimeout bounds how long /stats waits for the grid loop.
const statsTimeout = 2 * time.Second

// healthHandler creates an http.Handler that logs requests to the provided logger.
func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statsHandler reports grid statistics. The grid is read on its loop, so the
// request fails when the loop is not running.
func (app *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	ch := make(chan grid.Stats, 1)
	app.loop.Post(func() { ch <- app.grid.Stats() })

	timer := time.NewTimer(statsTimeout)
	defer timer.Stop()
	select {
	case st := <-ch:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			ctxlog.FromContext(app.ctx).Error("Failed to encode stats.", "error", err)
		}
	case <-timer.C:
		http.Error(w, "grid loop is not responding", http.StatusServiceUnavailable)
	case <-r.Context().Done():
	}
}

// healthCheckServer initializes and runs the health check HTTP server.
func (app *App) healthCheckServer() {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Configuring health check server.")
	if app.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", app.healthHandler)
	mux.HandleFunc("/stats", app.statsHandler)

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)

	app.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe will return an error on graceful shutdown.
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (app *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Closing health check server...")

	if app.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(app.ctx, 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
