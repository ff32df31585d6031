// ABOUTME: Run controller and scenario stepper for the demo simulation
// ABOUTME: Enforces a single active run, steps scenarios, broadcasts updates

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/adaptivecloud/cloudsim-api/models"
)

// Broadcaster delivers a serialized event to every connected viewer.
// Delivery failures stay inside the broadcaster; the stepper never sees them.
type Broadcaster interface {
	Broadcast(payload []byte)
}

var (
	// ErrSimulationRunning is returned when a start is requested while a
	// scenario is already active. Requests are rejected, never queued.
	ErrSimulationRunning = errors.New("simulation already running")
	// ErrUnknownScenario is returned for scenario IDs outside 1..3.
	ErrUnknownScenario = errors.New("unknown scenario id")
)

// Simulator owns the run lifecycle: at most one stepper goroutine is alive at
// a time, and stop/reset cancel it cooperatively at step boundaries.
type Simulator struct {
	store     *SnapshotStore
	broadcast Broadcaster
	interval  func(Scenario) time.Duration
	now       func() time.Time

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	gen       uint64
	inventory models.Inventory
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithInterval pins every scenario's step interval to d. Tests use this to
// run full scenarios in milliseconds.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		s.interval = func(Scenario) time.Duration { return d }
	}
}

// NewSimulator creates a simulator with a freshly generated inventory.
func NewSimulator(store *SnapshotStore, b Broadcaster, opts ...Option) *Simulator {
	s := &Simulator{
		store:     store,
		broadcast: b,
		interval:  func(sc Scenario) time.Duration { return sc.Interval },
		now:       time.Now,
		inventory: models.NewInventory(newRNG()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the scenario with the given ID. It fails without state
// change when the ID is unknown or a run is already active.
func (s *Simulator) Start(id int) error {
	sc, ok := ScenarioByID(id)
	if !ok {
		return ErrUnknownScenario
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrSimulationRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.gen++

	s.store.SetPhase(true, sc.Name)
	go s.run(ctx, sc, s.gen)

	slog.Info("Scenario started", "id", sc.ID, "name", sc.Name, "steps", sc.Steps)
	return nil
}

// Stop cancels any active run and returns the phase to idle. Idempotent; it
// does not wait for the stepper, which exits at its next step boundary.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running = false
	// Invalidate any pending natural completion from the cancelled run.
	s.gen++
	s.store.SetPhase(false, models.ScenarioIdle)

	slog.Info("Simulation stopped")
}

// Reset stops any run, zeroes metrics and zone status, and regenerates the
// inventory with fresh randomized VM requests.
func (s *Simulator) Reset() {
	s.Stop()
	s.store.ResetMetrics()

	s.mu.Lock()
	s.inventory = models.NewInventory(newRNG())
	s.mu.Unlock()

	slog.Info("Simulation reset",
		"hosts", models.InventoryHostCount,
		"vms", models.InventoryVMCount,
	)
}

// Status reads the current snapshot for the status endpoint.
func (s *Simulator) Status() models.StatusResponse {
	snap := s.store.Snapshot()
	return models.StatusResponse{
		SimulationRunning: snap.Running,
		CurrentScenario:   snap.Scenario,
		Metrics:           snap.Metrics,
		ZoneStatus:        snap.ZoneStatus,
	}
}

// Running reports whether a stepper is active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Hosts returns a copy of the static host inventory.
func (s *Simulator) Hosts() []models.Host {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Host, len(s.inventory.Hosts))
	copy(out, s.inventory.Hosts)
	return out
}

// VMs returns a copy of the static VM inventory.
func (s *Simulator) VMs() []models.VM {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.VM, len(s.inventory.VMs))
	copy(out, s.inventory.VMs)
	return out
}

// run is the stepper loop. Cancellation is checked at every step boundary, so
// an in-flight step always finishes its write and broadcast.
func (s *Simulator) run(ctx context.Context, sc Scenario, gen uint64) {
	rng := newRNG()
	migrations := s.store.Snapshot().Metrics.VMMigrationCount

	for step := 0; step < sc.Steps; step++ {
		if ctx.Err() != nil {
			return
		}

		m, z := sc.Step(step, migrations, rng)
		migrations = m.VMMigrationCount

		s.store.Replace(m, z)
		s.publish(m, z)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval(sc)):
		}
	}

	if s.finish(gen) {
		slog.Info("Scenario completed", "name", sc.Name)
	}
}

// finish returns the simulator to idle after a natural completion. A run
// superseded by stop or a newer start leaves state alone.
func (s *Simulator) finish(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || !s.running {
		return false
	}
	s.running = false
	s.cancel = nil
	s.store.SetPhase(false, models.ScenarioIdle)
	return true
}

func (s *Simulator) publish(m models.Metrics, z models.ZoneStatus) {
	evt := models.MetricsUpdateEvent{
		Type:       models.EventTypeMetricsUpdate,
		Data:       m,
		ZoneStatus: z,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Error("Failed to serialize metrics update", "error", err)
		return
	}
	s.broadcast.Broadcast(payload)
}

// newRNG seeds an independent generator; each run and each inventory gets its
// own so a stepper never shares rand state with a concurrent reset.
func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
