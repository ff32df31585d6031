package services

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/adaptivecloud/cloudsim-api/models"
)

func TestScenarioByID_KnownIDs(t *testing.T) {
	expected := map[int]struct {
		name     string
		steps    int
		interval time.Duration
	}{
		1: {models.ScenarioHighLoad, 30, 1 * time.Second},
		2: {models.ScenarioZoneMigration, 25, 1200 * time.Millisecond},
		3: {models.ScenarioResourceScaling, 20, 1500 * time.Millisecond},
	}

	for id, want := range expected {
		sc, ok := ScenarioByID(id)
		if !ok {
			t.Fatalf("Expected scenario %d to exist", id)
		}
		if sc.Name != want.name {
			t.Errorf("Scenario %d: expected name %s, got %s", id, want.name, sc.Name)
		}
		if sc.Steps != want.steps {
			t.Errorf("Scenario %d: expected %d steps, got %d", id, want.steps, sc.Steps)
		}
		if sc.Interval != want.interval {
			t.Errorf("Scenario %d: expected interval %v, got %v", id, want.interval, sc.Interval)
		}
	}
}

func TestScenarioByID_UnknownIDs(t *testing.T) {
	for _, id := range []int{0, 4, -1, 100} {
		if _, ok := ScenarioByID(id); ok {
			t.Errorf("Expected scenario %d to be unknown", id)
		}
	}
}

// Every step of every scenario must keep percentage fields in [0,100] and the
// migration counter non-decreasing, for any jitter.
func TestScenarioSteps_BoundsAndMonotonicity(t *testing.T) {
	for _, id := range []int{1, 2, 3} {
		sc, _ := ScenarioByID(id)

		for seed := uint64(0); seed < 5; seed++ {
			rng := rand.New(rand.NewPCG(seed, seed*31+7))
			migrations := 0

			for step := 0; step < sc.Steps; step++ {
				m, z := sc.Step(step, migrations, rng)

				checkPct(t, sc.Name, step, "cpu_utilization", m.CPUUtilization)
				checkPct(t, sc.Name, step, "ram_usage", m.RAMUsage)
				checkPct(t, sc.Name, step, "storage_usage", m.StorageUsage)
				checkPct(t, sc.Name, step, "bandwidth_usage", m.BandwidthUsage)

				if m.VMMigrationCount < migrations {
					t.Errorf("%s step %d: migration count decreased %d -> %d",
						sc.Name, step, migrations, m.VMMigrationCount)
				}
				migrations = m.VMMigrationCount

				if len(z) != 3 {
					t.Fatalf("%s step %d: expected 3 zones, got %d", sc.Name, step, len(z))
				}
				for name, info := range z {
					checkPct(t, sc.Name, step, name+" utilization", info.Utilization)
					if info.VMCount < 0 {
						t.Errorf("%s step %d: zone %s has negative VM count %d",
							sc.Name, step, name, info.VMCount)
					}
				}
			}
		}
	}
}

func TestZoneMigrationStep_MigrationBurstWindow(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))

	before, _ := zoneMigrationStep(5, 0, rng)
	if before.VMMigrationCount != 0 {
		t.Errorf("Expected no migrations before the burst window, got %d", before.VMMigrationCount)
	}

	during, _ := zoneMigrationStep(10, 0, rng)
	if during.VMMigrationCount < 1 {
		t.Errorf("Expected at least one migration inside the burst window, got %d", during.VMMigrationCount)
	}
}

func TestResourceScalingStep_MigrationEveryFourthStep(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 11))

	m, _ := resourceScalingStep(0, 5, rng)
	if m.VMMigrationCount != 6 {
		t.Errorf("Expected migration on step 0, got count %d", m.VMMigrationCount)
	}

	m, _ = resourceScalingStep(1, 5, rng)
	if m.VMMigrationCount != 5 {
		t.Errorf("Expected no migration on step 1, got count %d", m.VMMigrationCount)
	}
}

func checkPct(t *testing.T, scenario string, step int, field string, v float64) {
	t.Helper()
	if v < 0 || v > 100 {
		t.Errorf("%s step %d: %s out of range: %v", scenario, step, field, v)
	}
}
