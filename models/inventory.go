// ABOUTME: Static host and VM inventory generated at startup and on reset
// ABOUTME: Fixed host capacities plus normally distributed VM resource requests

package models

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Reference inventory size and per-host capacities.
const (
	InventoryHostCount = 5
	InventoryVMCount   = 15

	HostTotalCPU       = 200.0
	HostTotalRAM       = 16000.0
	HostTotalStorage   = 500000.0
	HostTotalBandwidth = 1000.0
)

// HostZoneAllocation tracks per-zone placement bookkeeping on a host.
type HostZoneAllocation struct {
	VMs           []string `json:"vms"`
	CPUAllocation float64  `json:"cpu_allocation"`
	RAMAllocation float64  `json:"ram_allocation"`
}

// Host is a physical machine record. Capacity fields are fixed at creation;
// scenario steppers only move the aggregate snapshot metrics, never host state.
type Host struct {
	HostID             string                        `json:"host_id"`
	GUID               string                        `json:"guid"`
	TotalCPU           float64                       `json:"total_cpu"`
	TotalRAM           float64                       `json:"total_ram"`
	TotalStorage       float64                       `json:"total_storage"`
	TotalBandwidth     float64                       `json:"total_bandwidth"`
	AvailableCPU       float64                       `json:"available_cpu"`
	AvailableRAM       float64                       `json:"available_ram"`
	AvailableStorage   float64                       `json:"available_storage"`
	AvailableBandwidth float64                       `json:"available_bandwidth"`
	Zones              map[string]HostZoneAllocation `json:"zones"`
}

// VM is a virtual machine record with randomized resource requests.
type VM struct {
	VMID           string  `json:"vm_id"`
	GUID           string  `json:"guid"`
	CPUReq         float64 `json:"cpu_req"`
	RAMReq         float64 `json:"ram_req"`
	StorageReq     float64 `json:"storage_req"`
	BandwidthReq   float64 `json:"bandwidth_req"`
	CurrentZone    string  `json:"current_zone,omitempty"`
	HostID         string  `json:"host_id,omitempty"`
	MigrationCount int     `json:"migration_count"`
}

// Inventory bundles the hosts and VMs created at startup or reset.
// Read-only afterwards.
type Inventory struct {
	Hosts []Host
	VMs   []VM
}

// NewInventory generates the reference inventory: fixed-capacity hosts and
// VMs whose resource requests are drawn from normal distributions with floors.
func NewInventory(rng *rand.Rand) Inventory {
	hosts := make([]Host, 0, InventoryHostCount)
	for i := 0; i < InventoryHostCount; i++ {
		zones := make(map[string]HostZoneAllocation, 3)
		for _, name := range ZoneNames() {
			zones[name] = HostZoneAllocation{VMs: []string{}}
		}
		hosts = append(hosts, Host{
			HostID:             fmt.Sprintf("Host_%d", i),
			GUID:               uuid.New().String(),
			TotalCPU:           HostTotalCPU,
			TotalRAM:           HostTotalRAM,
			TotalStorage:       HostTotalStorage,
			TotalBandwidth:     HostTotalBandwidth,
			AvailableCPU:       HostTotalCPU,
			AvailableRAM:       HostTotalRAM,
			AvailableStorage:   HostTotalStorage,
			AvailableBandwidth: HostTotalBandwidth,
			Zones:              zones,
		})
	}

	vms := make([]VM, 0, InventoryVMCount)
	for i := 0; i < InventoryVMCount; i++ {
		vms = append(vms, VM{
			VMID:         fmt.Sprintf("VM_%d", i),
			GUID:         uuid.New().String(),
			CPUReq:       floored(rng.NormFloat64()*20+50, 10),
			RAMReq:       floored(rng.NormFloat64()*1500+4000, 1000),
			StorageReq:   floored(rng.NormFloat64()*20000+50000, 10000),
			BandwidthReq: floored(rng.NormFloat64()*30+100, 10),
		})
	}

	return Inventory{Hosts: hosts, VMs: vms}
}

func floored(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
