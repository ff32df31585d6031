// ABOUTME: Entry point for the Adaptive Cloud Simulation API server
// ABOUTME: Wires the snapshot store, simulator, stream hub, and HTTP routes

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adaptivecloud/cloudsim-api/cache"
	"github.com/adaptivecloud/cloudsim-api/config"
	"github.com/adaptivecloud/cloudsim-api/handlers"
	"github.com/adaptivecloud/cloudsim-api/logger"
	"github.com/adaptivecloud/cloudsim-api/middleware"
	"github.com/adaptivecloud/cloudsim-api/services"
	"github.com/adaptivecloud/cloudsim-api/stream"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Adaptive Cloud Simulation API")

	// Initialize cache for inventory responses
	c := cache.New(time.Duration(cfg.CacheTTL) * time.Second)

	// Wire the simulation core
	store := services.NewSnapshotStore()
	hub := stream.NewHub()
	sim := services.NewSimulator(store, hub)
	h := handlers.NewHandler(cfg, c, sim, hub)

	mux := http.NewServeMux()
	limiter := middleware.NewRateLimiter(cfg.RateLimitWrite, 5)
	for _, route := range h.Routes() {
		wrapped := middleware.Chain(route.Handler, middleware.LogRequest, middleware.CORS)
		if cfg.RateLimitEnabled && route.Method == http.MethodPost {
			wrapped = middleware.Chain(route.Handler, middleware.LogRequest, middleware.CORS, limiter.Limit)
		}
		mux.HandleFunc(route.Method+" "+route.Path, wrapped)
	}
	// Browser preflight requests arrive as OPTIONS and are answered by the
	// CORS middleware directly.
	mux.HandleFunc("OPTIONS /", middleware.CORS(func(w http.ResponseWriter, r *http.Request) {}))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		sim.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
