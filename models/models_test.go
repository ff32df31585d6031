package models

import (
	"encoding/json"
	"testing"
)

func TestEmptyZoneStatus_AllZonesZeroed(t *testing.T) {
	z := EmptyZoneStatus()

	if len(z) != 3 {
		t.Fatalf("Expected 3 zones, got %d", len(z))
	}

	for _, name := range ZoneNames() {
		info, ok := z[name]
		if !ok {
			t.Errorf("Expected zone %s to be present", name)
			continue
		}
		if info.VMCount != 0 || info.Utilization != 0 {
			t.Errorf("Expected zone %s zeroed, got %+v", name, info)
		}
	}
}

func TestZoneStatus_CloneIsIndependent(t *testing.T) {
	original := ZoneStatus{
		ZoneMedium: {VMCount: 5, Utilization: 42.0},
	}

	clone := original.Clone()
	clone[ZoneMedium] = ZoneInfo{VMCount: 9, Utilization: 99.0}

	if original[ZoneMedium].VMCount != 5 {
		t.Errorf("Expected original untouched, got %+v", original[ZoneMedium])
	}
}

func TestMetricsUpdateEvent_WireFormat(t *testing.T) {
	evt := MetricsUpdateEvent{
		Type: EventTypeMetricsUpdate,
		Data: Metrics{
			CPUUtilization:   61.5,
			RAMUsage:         50.2,
			StorageUsage:     40.1,
			BandwidthUsage:   35.9,
			VMMigrationCount: 2,
		},
		ZoneStatus: ZoneStatus{
			ZoneHighResourceSlow: {VMCount: 8, Utilization: 70.0},
		},
		Timestamp: "2025-01-02T03:04:05Z",
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	// Viewers depend on these exact top-level keys.
	for _, key := range []string{"type", "data", "zone_status", "timestamp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in event payload", key)
		}
	}

	var metrics map[string]json.RawMessage
	if err := json.Unmarshal(raw["data"], &metrics); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}
	for _, key := range []string{"cpu_utilization", "ram_usage", "storage_usage", "bandwidth_usage", "vm_migration_count"} {
		if _, ok := metrics[key]; !ok {
			t.Errorf("Expected key %q in metrics payload", key)
		}
	}
}
