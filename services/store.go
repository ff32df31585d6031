// ABOUTME: Snapshot store holding the single current simulation state
// ABOUTME: Point-in-time reads with wholesale replacement, never partial mutation

package services

import (
	"sync"

	"github.com/adaptivecloud/cloudsim-api/models"
)

// SnapshotStore owns the process-wide simulation snapshot. Readers get a
// consistent copy; writers replace metrics and zone status together so a
// concurrent reader never sees a half-updated step.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap models.Snapshot
}

// NewSnapshotStore returns a store at the idle, all-zero baseline.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snap: models.Snapshot{
			Scenario:   models.ScenarioIdle,
			ZoneStatus: models.EmptyZoneStatus(),
		},
	}
}

// Snapshot returns a point-in-time copy, safe to hold across later writes.
func (s *SnapshotStore) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snap
	out.ZoneStatus = s.snap.ZoneStatus.Clone()
	return out
}

// Replace swaps in a full set of step results. The run flags are left alone;
// only the active stepper writes here, so writes are already serialized.
func (s *SnapshotStore) Replace(m models.Metrics, z models.ZoneStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Metrics = m
	s.snap.ZoneStatus = z.Clone()
}

// SetPhase records a run transition (started, stopped, completed).
func (s *SnapshotStore) SetPhase(running bool, scenario string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Running = running
	s.snap.Scenario = scenario
}

// ResetMetrics returns metrics and zone status to the all-zero baseline.
func (s *SnapshotStore) ResetMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Metrics = models.Metrics{}
	s.snap.ZoneStatus = models.EmptyZoneStatus()
}
