// ABOUTME: HTTP handlers for scenario start, stop, and reset actions
// ABOUTME: Maps simulator errors onto client and server error responses

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/adaptivecloud/cloudsim-api/models"
	"github.com/adaptivecloud/cloudsim-api/services"
)

// StartScenario launches one of the scripted scenarios. A start while a run
// is active is rejected, never queued.
func (h *Handler) StartScenario(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, "Invalid scenario ID", http.StatusBadRequest)
		return
	}

	if err := h.sim.Start(id); err != nil {
		switch {
		case errors.Is(err, services.ErrSimulationRunning):
			h.writeError(w, "Simulation already running", http.StatusBadRequest)
		case errors.Is(err, services.ErrUnknownScenario):
			h.writeError(w, "Invalid scenario ID", http.StatusBadRequest)
		default:
			h.writeError(w, "Failed to launch scenario", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, models.ActionResponse{
		Message: fmt.Sprintf("Started scenario %d", id),
		Status:  "success",
	})
}

// StopSimulation halts any active scenario. Always succeeds.
func (h *Handler) StopSimulation(w http.ResponseWriter, r *http.Request) {
	h.sim.Stop()
	h.writeJSON(w, http.StatusOK, models.ActionResponse{
		Message: "Simulation stopped",
		Status:  "success",
	})
}

// ResetSimulation stops, zeroes metrics, and regenerates the inventory.
func (h *Handler) ResetSimulation(w http.ResponseWriter, r *http.Request) {
	h.sim.Reset()
	if h.cache != nil {
		h.cache.Purge()
	}
	h.writeJSON(w, http.StatusOK, models.ActionResponse{
		Message: "Simulation reset",
		Status:  "success",
	})
}
