// ABOUTME: HTTP handlers for simulation control, status, and inventory endpoints
// ABOUTME: Provides the JSON API surface in front of the simulator and stream hub

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/adaptivecloud/cloudsim-api/cache"
	"github.com/adaptivecloud/cloudsim-api/config"
	"github.com/adaptivecloud/cloudsim-api/models"
	"github.com/adaptivecloud/cloudsim-api/services"
	"github.com/adaptivecloud/cloudsim-api/stream"
)

const (
	cacheKeyHosts = "inventory:hosts"
	cacheKeyVMs   = "inventory:vms"
)

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	sim      *services.Simulator
	hub      *stream.Hub
	upgrader websocket.Upgrader
}

func NewHandler(cfg *config.Config, c *cache.Cache, sim *services.Simulator, hub *stream.Hub) *Handler {
	return &Handler{
		cfg:   cfg,
		cache: c,
		sim:   sim,
		hub:   hub,
		upgrader: websocket.Upgrader{
			// The API already answers any origin; the stream matches.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Root returns a liveness/info message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Adaptive Cloud Simulation API",
		"status":  "running",
	})
}

// Health returns component health for operators and probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":             "ok",
		"simulation_running": h.sim.Running(),
		"subscribers":        h.hub.Count(),
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Status returns the most recently written snapshot.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.sim.Status())
}

// Hosts returns the static host inventory.
func (h *Handler) Hosts(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKeyHosts); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	hosts := h.sim.Hosts()
	if h.cache != nil {
		h.cache.Set(cacheKeyHosts, hosts)
	}
	h.writeJSON(w, http.StatusOK, hosts)
}

// VMs returns the static VM inventory.
func (h *Handler) VMs(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKeyVMs); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	vms := h.sim.VMs()
	if h.cache != nil {
		h.cache.Set(cacheKeyVMs, vms)
	}
	h.writeJSON(w, http.StatusOK, vms)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
