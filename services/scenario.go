// ABOUTME: Hand-authored scenario curve tables for the demo simulation
// ABOUTME: Each scenario maps a step index to synthetic metrics and zone status

package services

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/adaptivecloud/cloudsim-api/models"
)

// StepFunc computes one step's metrics and zone status. migrations is the
// accumulated migration counter entering the step; the returned Metrics
// carries the (never decreasing) updated value.
type StepFunc func(step, migrations int, rng *rand.Rand) (models.Metrics, models.ZoneStatus)

// Scenario is a fixed-length sequence of formula-driven steps. The curves are
// scripted demo material, not a simulation model.
type Scenario struct {
	ID       int
	Name     string
	Steps    int
	Interval time.Duration
	Step     StepFunc
}

// ScenarioByID looks up a runnable scenario. IDs are 1..3.
func ScenarioByID(id int) (Scenario, bool) {
	for _, sc := range scenarioTable {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}

var scenarioTable = []Scenario{
	{
		ID:       1,
		Name:     models.ScenarioHighLoad,
		Steps:    30,
		Interval: 1 * time.Second,
		Step:     highLoadStep,
	},
	{
		ID:       2,
		Name:     models.ScenarioZoneMigration,
		Steps:    25,
		Interval: 1200 * time.Millisecond,
		Step:     zoneMigrationStep,
	},
	{
		ID:       3,
		Name:     models.ScenarioResourceScaling,
		Steps:    20,
		Interval: 1500 * time.Millisecond,
		Step:     resourceScalingStep,
	},
}

// highLoadStep ramps all four metrics toward saturation with jitter.
// Migrations become likely once CPU crosses 80%.
func highLoadStep(step, migrations int, rng *rand.Rand) (models.Metrics, models.ZoneStatus) {
	s := float64(step)
	cpu := clamp(60+s*1.2+rng.NormFloat64()*5, 0, 95)
	ram := clamp(50+s*1.0+rng.NormFloat64()*3, 0, 90)
	storage := clamp(40+s*0.8+rng.NormFloat64()*2, 0, 85)
	bandwidth := clamp(35+s*0.6+rng.NormFloat64()*4, 0, 80)

	if cpu > 80 && rng.Float64() < 0.3 {
		migrations++
	}

	m := models.Metrics{
		CPUUtilization:   cpu,
		RAMUsage:         ram,
		StorageUsage:     storage,
		BandwidthUsage:   bandwidth,
		VMMigrationCount: migrations,
	}
	z := models.ZoneStatus{
		models.ZoneHighResourceSlow: {
			VMCount:     maxInt(0, 8+rng.IntN(5)-2),
			Utilization: clamp(cpu+rng.NormFloat64()*10, 0, 100),
		},
		models.ZoneMedium: {
			VMCount:     maxInt(0, 5+rng.IntN(3)-1),
			Utilization: clamp(cpu*0.7+rng.NormFloat64()*5, 0, 100),
		},
		models.ZoneFastSmall: {
			VMCount:     maxInt(0, 2+rng.IntN(3)-1),
			Utilization: clamp(cpu*0.4+rng.NormFloat64()*3, 0, 100),
		},
	}
	return m, z
}

// zoneMigrationStep plays an imbalance phase for the first ten steps, then a
// rebalancing phase where load drains from the heavy zone into the others.
func zoneMigrationStep(step, migrations int, rng *rand.Rand) (models.Metrics, models.ZoneStatus) {
	s := float64(step)
	var highLoad, mediumLoad, fastLoad float64
	if step < 10 {
		highLoad = 90 - s*2
		mediumLoad = 40 + s*3
		fastLoad = 20 + s
	} else {
		highLoad = math.Max(40, 70-(s-10)*2)
		mediumLoad = math.Min(80, 60+(s-10))
		fastLoad = math.Min(60, 30+(s-10)*1.5)
	}

	// Migration burst in the middle of the run.
	if step >= 8 && step <= 15 {
		migrations += 1 + rng.IntN(3)
	}

	avg := (highLoad + mediumLoad + fastLoad) / 3

	m := models.Metrics{
		CPUUtilization:   clamp(avg, 0, 100),
		RAMUsage:         clamp(avg*0.9, 0, 100),
		StorageUsage:     clamp(avg*0.7, 0, 100),
		BandwidthUsage:   clamp(avg*0.6, 0, 100),
		VMMigrationCount: migrations,
	}
	z := models.ZoneStatus{
		models.ZoneHighResourceSlow: {
			VMCount:     maxInt(2, int(8-s*0.2)),
			Utilization: clamp(highLoad, 0, 100),
		},
		models.ZoneMedium: {
			VMCount:     maxInt(3, int(5+s*0.1)),
			Utilization: clamp(mediumLoad, 0, 100),
		},
		models.ZoneFastSmall: {
			VMCount:     maxInt(1, int(2+s*0.1)),
			Utilization: clamp(fastLoad, 0, 100),
		},
	}
	return m, z
}

// resourceScalingStep follows a sinusoidal scale factor, with a migration
// every fourth step.
func resourceScalingStep(step, migrations int, rng *rand.Rand) (models.Metrics, models.ZoneStatus) {
	s := float64(step)
	scale := 1 + 0.5*math.Sin(s*0.3)

	baseCPU := 45*scale + rng.NormFloat64()*5
	baseRAM := 50*scale + rng.NormFloat64()*3
	baseStorage := 35*scale + rng.NormFloat64()*4
	baseBandwidth := 40*scale + rng.NormFloat64()*6

	if step%4 == 0 {
		migrations++
	}

	total := (baseCPU + baseRAM + baseStorage + baseBandwidth) / 4

	m := models.Metrics{
		CPUUtilization:   clamp(baseCPU, 0, 100),
		RAMUsage:         clamp(baseRAM, 0, 100),
		StorageUsage:     clamp(baseStorage, 0, 100),
		BandwidthUsage:   clamp(baseBandwidth, 0, 100),
		VMMigrationCount: migrations,
	}
	z := models.ZoneStatus{
		models.ZoneHighResourceSlow: {
			VMCount:     maxInt(2, int(6+2*math.Sin(s*0.2))),
			Utilization: clamp(total*1.2, 0, 100),
		},
		models.ZoneMedium: {
			VMCount:     maxInt(3, int(7+math.Sin(s*0.15))),
			Utilization: clamp(total, 0, 100),
		},
		models.ZoneFastSmall: {
			VMCount:     maxInt(1, int(3+math.Sin(s*0.25))),
			Utilization: clamp(total*0.8, 0, 100),
		},
	}
	return m, z
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
