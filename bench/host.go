package bench

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
)

// Host describes the machine a benchmark ran on
type Host struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	Platform     string `json:"platform,omitempty"`
	Kernel       string `json:"kernel,omitempty"`
	GoVersion    string `json:"go_version"`
	GOMAXPROCS   int    `json:"gomaxprocs"`
	CPUModel     string `json:"cpu_model,omitempty"`
	LogicalCPUs  int    `json:"logical_cpus,omitempty"`
	PhysicalCPUs int    `json:"physical_cpus,omitempty"`
	MemoryTotal  uint64 `json:"memory_total,omitempty"`
	MemoryFree   uint64 `json:"memory_available,omitempty"`
}

// CollectHost gathers host information. Lookups that fail are logged and
// leave their fields empty.
func CollectHost() Host {
	h := Host{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	log := logger.ComponentLogger("bench.host")

	if info, err := host.Info(); err == nil {
		h.Platform = info.Platform + " " + info.PlatformVersion
		h.Kernel = info.KernelVersion
	} else {
		log.Debugw("host info unavailable", logger.FieldError, err)
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	} else if err != nil {
		log.Debugw("cpu info unavailable", logger.FieldError, err)
	}

	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCPUs = n
	}

	total, available, err := memoryStats()
	if err != nil {
		log.Debugw("memory stats unavailable", logger.FieldError, err)
	} else {
		h.MemoryTotal, h.MemoryFree = total, available
	}

	return h
}

// memoryStats returns total and available memory in bytes
func memoryStats() (total uint64, available uint64, err error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get memory stats")
	}

	return v.Total, v.Available, nil
}
