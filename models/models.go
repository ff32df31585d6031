// ABOUTME: Data models for simulation metrics, zones, and API responses
// ABOUTME: JSON-serializable structures matching frontend expectations

package models

// Zone names are fixed; every snapshot carries all three.
const (
	ZoneHighResourceSlow = "high_resource_slow"
	ZoneMedium           = "medium"
	ZoneFastSmall        = "fast_small"
)

// ZoneNames returns the fixed set of zones in display order.
func ZoneNames() []string {
	return []string{ZoneHighResourceSlow, ZoneMedium, ZoneFastSmall}
}

// Scenario names as reported by the status endpoint.
const (
	ScenarioIdle            = "idle"
	ScenarioHighLoad        = "high_load"
	ScenarioZoneMigration   = "zone_migration"
	ScenarioResourceScaling = "resource_scaling"
)

// Metrics holds the aggregate utilization figures for one simulation step.
// The four percentage fields are clamped to [0,100]; the migration count
// never decreases within a run.
type Metrics struct {
	CPUUtilization   float64 `json:"cpu_utilization"`
	RAMUsage         float64 `json:"ram_usage"`
	StorageUsage     float64 `json:"storage_usage"`
	BandwidthUsage   float64 `json:"bandwidth_usage"`
	VMMigrationCount int     `json:"vm_migration_count"`
}

// ZoneInfo describes one zone's VM population and utilization.
type ZoneInfo struct {
	VMCount     int     `json:"vm_count"`
	Utilization float64 `json:"utilization"`
}

// ZoneStatus maps zone name to its current info.
type ZoneStatus map[string]ZoneInfo

// EmptyZoneStatus returns the all-zero baseline for every zone.
func EmptyZoneStatus() ZoneStatus {
	z := make(ZoneStatus, 3)
	for _, name := range ZoneNames() {
		z[name] = ZoneInfo{}
	}
	return z
}

// Clone returns an independent copy of the zone map.
func (z ZoneStatus) Clone() ZoneStatus {
	if z == nil {
		return nil
	}
	out := make(ZoneStatus, len(z))
	for name, info := range z {
		out[name] = info
	}
	return out
}

// Snapshot is the complete simulation state, replaced wholesale each step so
// readers never observe mixed old/new fields.
type Snapshot struct {
	Running    bool       `json:"running"`
	Scenario   string     `json:"scenario"`
	Metrics    Metrics    `json:"metrics"`
	ZoneStatus ZoneStatus `json:"zone_status"`
}

// StatusResponse is the /api/status payload.
type StatusResponse struct {
	SimulationRunning bool       `json:"simulation_running"`
	CurrentScenario   string     `json:"current_scenario"`
	Metrics           Metrics    `json:"metrics"`
	ZoneStatus        ZoneStatus `json:"zone_status"`
}

// EventTypeMetricsUpdate identifies the event pushed at scenario step cadence.
const EventTypeMetricsUpdate = "metrics_update"

// MetricsUpdateEvent is the payload streamed to websocket subscribers.
// Timestamp is ISO-8601.
type MetricsUpdateEvent struct {
	Type       string     `json:"type"`
	Data       Metrics    `json:"data"`
	ZoneStatus ZoneStatus `json:"zone_status"`
	Timestamp  string     `json:"timestamp"`
}

// ActionResponse acknowledges a control action (start, stop, reset).
type ActionResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
