// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/status")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration. Paths use Go 1.22 pattern
// syntax; "/{$}" pins the info route to exactly "/".
func (h *Handler) Routes() []Route {
	return []Route{
		// Info & health
		{Method: http.MethodGet, Path: "/{$}", Handler: h.Root},
		{Method: http.MethodGet, Path: "/api/health", Handler: h.Health},

		// Simulation
		{Method: http.MethodGet, Path: "/api/status", Handler: h.Status},
		{Method: http.MethodPost, Path: "/api/scenario/{id}", Handler: h.StartScenario},
		{Method: http.MethodPost, Path: "/api/stop", Handler: h.StopSimulation},
		{Method: http.MethodPost, Path: "/api/reset", Handler: h.ResetSimulation},

		// Inventory
		{Method: http.MethodGet, Path: "/api/hosts", Handler: h.Hosts},
		{Method: http.MethodGet, Path: "/api/vms", Handler: h.VMs},

		// Live stream
		{Method: http.MethodGet, Path: "/ws", Handler: h.Stream},
	}
}
