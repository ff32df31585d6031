// ABOUTME: Shared helpers for end-to-end tests
// ABOUTME: Builds a fully wired test server with a fast-stepping simulator

package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adaptivecloud/cloudsim-api/cache"
	"github.com/adaptivecloud/cloudsim-api/config"
	"github.com/adaptivecloud/cloudsim-api/handlers"
	"github.com/adaptivecloud/cloudsim-api/middleware"
	"github.com/adaptivecloud/cloudsim-api/services"
	"github.com/adaptivecloud/cloudsim-api/stream"
)

type testEnv struct {
	server *httptest.Server
	sim    *services.Simulator
	hub    *stream.Hub
}

// newTestEnv wires the full stack the way main does, with millisecond step
// intervals so whole scenarios complete quickly.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{Port: "8000", CacheTTL: 300}
	c := cache.New(time.Duration(cfg.CacheTTL) * time.Second)
	store := services.NewSnapshotStore()
	hub := stream.NewHub()
	sim := services.NewSimulator(store, hub, services.WithInterval(time.Millisecond))
	h := handlers.NewHandler(cfg, c, sim, hub)

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, middleware.LogRequest, middleware.CORS))
	}

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		sim.Stop()
		server.Close()
	})

	return &testEnv{server: server, sim: sim, hub: hub}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}
